package data

import "time"

type User struct {
	Id         string    `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	Email      string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Phone      string    `json:"phone" gorm:"size:32"`
	UserTypeId string    `json:"userTypeId" gorm:"size:64"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u User) GetId() string       { return u.Id }
func (u User) DisplayName() string { return u.Name }

type UserType struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u UserType) GetId() string       { return u.Id }
func (u UserType) DisplayName() string { return u.Name }

type Vendor struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:32"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

func (v Vendor) GetId() string       { return v.Id }
func (v Vendor) DisplayName() string { return v.Name }

type Category struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c Category) GetId() string       { return c.Id }
func (c Category) DisplayName() string { return c.Name }

type Civilian struct {
	Id         string    `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	NationalId string    `json:"nationalId" gorm:"size:32;uniqueIndex"`
	Phone      string    `json:"phone" gorm:"size:32"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (c Civilian) GetId() string       { return c.Id }
func (c Civilian) DisplayName() string { return c.Name }

// Site is a node of the site hierarchy. Children are only populated by tree
// requests.
type Site struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Code      string    `json:"code" gorm:"size:32"`
	ParentId  *string   `json:"parentId" gorm:"size:64;index"`
	Children  []Site    `json:"children,omitempty" gorm:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Site) GetId() string       { return s.Id }
func (s Site) DisplayName() string { return s.Name }
func (s Site) GetChildren() []Site { return s.Children }
func (s Site) HasChildren() bool   { return len(s.Children) > 0 }
func (s Site) IsRoot() bool        { return s.ParentId == nil || *s.ParentId == "" }

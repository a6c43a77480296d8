package store

import (
	"context"
	"fmt"
	"time"

	"admin-dash/data"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seed fills an empty store with demo records. A store that already has users
// is left alone.
func (s *Store) Seed(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&data.User{}).Count(&count).Error; err != nil {
		return mapError(err)
	}
	if count > 0 {
		return nil
	}

	base := time.Now().UTC().Add(-30 * 24 * time.Hour)
	at := func(i int) time.Time { return base.Add(time.Duration(i) * time.Hour) }

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		types := []data.UserType{
			{Id: uuid.NewString(), Name: "Administrator", Description: "Full access", CreatedAt: at(0)},
			{Id: uuid.NewString(), Name: "Operator", Description: "Day to day operations", CreatedAt: at(1)},
			{Id: uuid.NewString(), Name: "Auditor", Description: "Read only", CreatedAt: at(2)},
		}
		if err := tx.Create(&types).Error; err != nil {
			return err
		}

		var users []data.User
		for i := 1; i <= 25; i++ {
			users = append(users, data.User{
				Id:         uuid.NewString(),
				Name:       fmt.Sprintf("User %02d", i),
				Email:      fmt.Sprintf("user%02d@example.com", i),
				Phone:      fmt.Sprintf("+1555%07d", i),
				UserTypeId: types[i%len(types)].Id,
				CreatedAt:  at(i),
			})
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		var vendors []data.Vendor
		for i := 1; i <= 12; i++ {
			vendors = append(vendors, data.Vendor{
				Id:        uuid.NewString(),
				Name:      fmt.Sprintf("Vendor %02d", i),
				Email:     fmt.Sprintf("sales%02d@vendor.example", i),
				Address:   fmt.Sprintf("%d Market Street", i*10),
				CreatedAt: at(i),
			})
		}
		if err := tx.Create(&vendors).Error; err != nil {
			return err
		}

		var categories []data.Category
		for i, name := range []string{"Hardware", "Software", "Services", "Logistics", "Facilities", "Security", "Training", "Other"} {
			categories = append(categories, data.Category{
				Id:        uuid.NewString(),
				Name:      name,
				CreatedAt: at(i),
			})
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		var civilians []data.Civilian
		for i := 1; i <= 30; i++ {
			civilians = append(civilians, data.Civilian{
				Id:         uuid.NewString(),
				Name:       fmt.Sprintf("Civilian %02d", i),
				NationalId: fmt.Sprintf("NID%06d", i),
				CreatedAt:  at(i),
			})
		}
		if err := tx.Create(&civilians).Error; err != nil {
			return err
		}

		var sites []data.Site
		n := 0
		for r := 1; r <= 3; r++ {
			root := data.Site{Id: uuid.NewString(), Name: fmt.Sprintf("Region %d", r), Code: fmt.Sprintf("R%d", r), CreatedAt: at(n)}
			n++
			sites = append(sites, root)
			for c := 1; c <= 3; c++ {
				campus := data.Site{Id: uuid.NewString(), Name: fmt.Sprintf("Campus %d.%d", r, c), Code: fmt.Sprintf("R%dC%d", r, c), ParentId: &root.Id, CreatedAt: at(n)}
				n++
				sites = append(sites, campus)
				for b := 1; b <= 2; b++ {
					sites = append(sites, data.Site{
						Id:        uuid.NewString(),
						Name:      fmt.Sprintf("Building %d.%d.%d", r, c, b),
						Code:      fmt.Sprintf("R%dC%dB%d", r, c, b),
						ParentId:  &campus.Id,
						CreatedAt: at(n),
					})
					n++
				}
			}
		}
		if err := tx.Create(&sites).Error; err != nil {
			return err
		}

		log.Info("Seeded demo store", "users", len(users), "sites", len(sites))
		return nil
	})
}

package viewmodel

import (
	"context"
	"fmt"
	"testing"

	"admin-dash/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	Id       string
	Name     string
	Children []testNode
}

func (n testNode) GetId() string           { return n.Id }
func (n testNode) GetChildren() []testNode { return n.Children }

type fakeTreeService struct {
	forest    []testNode
	listCalls int
	treeCalls int
	created   []data.Payload
	deleted   []string
}

func (s *fakeTreeService) GetData(context.Context, data.ListParams) (data.ListResponse[testNode], error) {
	s.listCalls++
	return data.ListResponse[testNode]{}, nil
}

func (s *fakeTreeService) GetDataTree(_ context.Context, params data.ListParams) (data.ListResponse[testNode], error) {
	s.treeCalls++
	return data.ListResponse[testNode]{
		Data:       s.forest,
		Pagination: data.NewPaginationInfo(len(s.forest), params.Page(), params.PageSize()),
	}, nil
}

func (s *fakeTreeService) Create(_ context.Context, payload data.Payload) (testNode, error) {
	s.created = append(s.created, payload)
	return testNode{Id: fmt.Sprintf("new-%d", len(s.created))}, nil
}

func (s *fakeTreeService) Update(_ context.Context, id string, _ data.Payload) (testNode, error) {
	return testNode{Id: id}, nil
}

func (s *fakeTreeService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func testForest() []testNode {
	return []testNode{
		{Id: "a", Name: "A", Children: []testNode{
			{Id: "a1", Name: "A1", Children: []testNode{{Id: "a1x", Name: "A1x"}}},
			{Id: "a2", Name: "A2"},
		}},
		{Id: "b", Name: "B"},
	}
}

func setupTree(t *testing.T) (*TreeModel[testNode, data.Payload, data.Payload], *fakeTreeService) {
	t.Helper()

	svc := &fakeTreeService{forest: testForest()}
	m := NewTree[testNode, data.Payload, data.Payload](svc, TreeOptions[testNode, data.Payload]{
		Options: Options[testNode]{Resource: "nodes", SearchParam: "search", GuardStaleResponses: true},
	})
	drain(m, m.Init())
	return m, svc
}

func TestTree_ListUsesTreeEndpoint(t *testing.T) {
	m, svc := setupTree(t)

	drain(m, m.ListTree())

	assert.Equal(t, 2, svc.treeCalls)
	assert.Zero(t, svc.listCalls)
	require.Len(t, m.Items(), 2)
	assert.Len(t, m.Items()[0].Children, 2)
}

func TestTree_AddChildAttachesParent(t *testing.T) {
	m, svc := setupTree(t)
	parent := m.Items()[0].Children[0]

	m.OpenAddChild(&parent)

	assert.True(t, m.CreateOpen())
	got, ok := m.Parent()
	require.True(t, ok)
	assert.Equal(t, "a1", got.Id)

	drain(m, m.CreateItem(data.Payload{"name": "A1y"}))

	require.Len(t, svc.created, 1)
	assert.Equal(t, "a1", svc.created[0][DefaultParentField])
	assert.Equal(t, "A1y", svc.created[0]["name"])
	assert.False(t, m.CreateOpen())
	_, ok = m.Parent()
	assert.False(t, ok)
	assert.Equal(t, 2, svc.treeCalls)
}

func TestTree_CreateRootSendsNullParent(t *testing.T) {
	m, svc := setupTree(t)

	m.OpenCreate()
	drain(m, m.CreateItem(data.Payload{"name": "C"}))

	require.Len(t, svc.created, 1)
	v, ok := svc.created[0][DefaultParentField]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestTree_CloseCreateClearsParent(t *testing.T) {
	m, _ := setupTree(t)
	parent := m.Items()[1]

	m.OpenAddChild(&parent)
	m.CloseCreate()

	_, ok := m.Parent()
	assert.False(t, ok)
	assert.False(t, m.CreateOpen())
}

func TestTree_CustomAttachParent(t *testing.T) {
	svc := &fakeTreeService{forest: testForest()}
	m := NewTree[testNode, data.Payload, data.Payload](svc, TreeOptions[testNode, data.Payload]{
		Options: Options[testNode]{Resource: "nodes"},
		AttachParent: func(p data.Payload, parentId *string) data.Payload {
			if parentId != nil {
				p["under"] = *parentId
			}
			return p
		},
	})
	drain(m, m.Init())
	parent := m.Items()[1]

	m.OpenAddChild(&parent)
	drain(m, m.CreateItem(data.Payload{"name": "B1"}))

	require.Len(t, svc.created, 1)
	assert.Equal(t, "b", svc.created[0]["under"])
	assert.NotContains(t, svc.created[0], DefaultParentField)
}

func TestTree_DeleteNodeRequiresConfirmation(t *testing.T) {
	m, svc := setupTree(t)

	m.DeleteItem(m.Items()[1])
	assert.Empty(t, svc.deleted)

	drain(m, m.ExecuteDelete())

	assert.Equal(t, []string{"b"}, svc.deleted)
	assert.Equal(t, 2, svc.treeCalls)
}

func TestWalk(t *testing.T) {
	var visited []string
	Walk(testForest(), func(node testNode, depth int) bool {
		visited = append(visited, fmt.Sprintf("%s:%d", node.Id, depth))
		return node.Id != "a1"
	})

	assert.Equal(t, []string{"a:0", "a1:1", "a2:1", "b:0"}, visited)
}

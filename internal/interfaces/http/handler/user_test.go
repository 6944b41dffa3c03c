package handler

import (
	"net/http"
	"testing"
	"time"

	appidentity "github.com/inventory/backend/internal/application/identity"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/infrastructure/auth"
	"github.com/inventory/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserFixture() (*UserHandler, *testutil.MockUserRepository) {
	users := new(testutil.MockUserRepository)
	svc := appidentity.NewUserService(users, auth.NewInMemoryTokenBlacklist(), time.Hour, zap.NewNop())
	return NewUserHandler(svc, zap.NewNop()), users
}

func testUser(id int64, email string, role identity.Role) *identity.User {
	user, _ := identity.NewUser("User "+email, email, role)
	user.ID = id
	return user
}

func TestUserHandler_List(t *testing.T) {
	h, users := newUserFixture()
	users.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["role"] == "AUDITOR" && f.Filters["active"] == false
	})).Return([]identity.User{*testUser(4, "audit@example.com", identity.RoleAuditor)}, int64(1), nil)

	engine := newTestEngine(adminPrincipal())
	engine.GET("/users", h.List)
	w := testutil.Do(t, engine, testutil.Request{Path: "/users?role=auditor&active=false"})

	data := testutil.AssertSuccess[[]appidentity.UserResponse](t, w, http.StatusOK)
	require.Len(t, data, 1)
	assert.Equal(t, "AUDITOR", data[0].Role)
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h, users := newUserFixture()
		users.On("ExistsByEmail", mock.Anything, "new@example.com", int64(0)).Return(false, nil)
		users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).
			Run(func(args mock.Arguments) { args.Get(1).(*identity.User).ID = 9 }).
			Return(nil)

		engine := newTestEngine(adminPrincipal())
		engine.POST("/users", h.Register)
		w := testutil.Do(t, engine, testutil.Request{
			Method: http.MethodPost,
			Path:   "/users",
			Body:   map[string]string{"name": "New", "email": "New@Example.com"},
		})

		data := testutil.AssertSuccess[appidentity.UserResponse](t, w, http.StatusCreated)
		assert.Equal(t, int64(9), data.ID)
		assert.Equal(t, "new@example.com", data.Email)
		assert.Equal(t, "STAFF", data.Role)
	})

	t.Run("invalid email", func(t *testing.T) {
		h, _ := newUserFixture()
		engine := newTestEngine(adminPrincipal())
		engine.POST("/users", h.Register)
		w := testutil.Do(t, engine, testutil.Request{
			Method: http.MethodPost,
			Path:   "/users",
			Body:   map[string]string{"name": "New", "email": "nope"},
		})

		testutil.AssertError(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")
		env := testutil.Decode[any](t, w)
		require.Len(t, env.Error.Details, 1)
		assert.Equal(t, "email", env.Error.Details[0].Field)
	})
}

func TestUserHandler_BulkRegister_DuplicateEmails(t *testing.T) {
	h, users := newUserFixture()
	users.On("ExistingEmails", mock.Anything, mock.Anything).Return([]string{"b@example.com"}, nil)

	engine := newTestEngine(adminPrincipal())
	engine.POST("/users/bulk", h.BulkRegister)
	w := testutil.Do(t, engine, testutil.Request{
		Method: http.MethodPost,
		Path:   "/users/bulk",
		Body: map[string]any{"users": []map[string]string{
			{"name": "A", "email": "a@example.com"},
			{"name": "B", "email": "b@example.com"},
		}},
	})

	detail := testutil.AssertError(t, w, http.StatusConflict, "ERR_ALREADY_EXISTS")
	assert.Equal(t, "Emails already registered: b@example.com", detail)
	users.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
}

func TestUserHandler_Deactivate(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		h, _ := newUserFixture()
		engine := newTestEngine(adminPrincipal())
		engine.POST("/users/:id/deactivate", h.Deactivate)

		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodPost, Path: "/users/1/deactivate"})

		detail := testutil.AssertError(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")
		assert.Equal(t, "You cannot deactivate your own account", detail)
	})

	t.Run("already inactive via delete", func(t *testing.T) {
		h, users := newUserFixture()
		user := testUser(3, "staff@example.com", identity.RoleStaff)
		require.NoError(t, user.Deactivate())
		users.On("FindByID", mock.Anything, int64(3)).Return(user, nil)

		engine := newTestEngine(adminPrincipal())
		engine.DELETE("/users/:id", h.Delete)
		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodDelete, Path: "/users/3"})

		detail := testutil.AssertError(t, w, http.StatusUnprocessableEntity, "ERR_INVALID_STATE")
		assert.Equal(t, "User is already inactive", detail)
	})

	t.Run("activate", func(t *testing.T) {
		h, users := newUserFixture()
		user := testUser(3, "staff@example.com", identity.RoleStaff)
		require.NoError(t, user.Deactivate())
		users.On("FindByID", mock.Anything, int64(3)).Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)

		engine := newTestEngine(adminPrincipal())
		engine.POST("/users/:id/activate", h.Activate)
		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodPost, Path: "/users/3/activate"})

		data := testutil.AssertSuccess[appidentity.UserResponse](t, w, http.StatusOK)
		assert.True(t, data.Active)
	})
}

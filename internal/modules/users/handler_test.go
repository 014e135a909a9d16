package users

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"agencyops/internal/domain"
	"agencyops/internal/repository"
	"agencyops/internal/testutil"
)

func setup(t *testing.T) (http.Handler, *repository.UserRepository) {
	db := testutil.OpenTestDB(t)
	repo := repository.NewUserRepository(db)
	r, api := testutil.NewRouter("")
	NewHandler(NewService(repo)).RegisterRoutes(api)
	return r, repo
}

func TestCreateUser_HashesPasswordAndLowercasesEmail(t *testing.T) {
	r, repo := setup(t)

	w := testutil.DoJSON(r, http.MethodPost, "/api/users", CreateUserRequest{
		Name: "Sam", Email: "Sam@Agency.COM", Password: "long-enough", Role: domain.RoleSupport,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out domain.User
	testutil.Data(t, w, &out)
	assert.Equal(t, "sam@agency.com", out.Email)
	assert.Equal(t, "Support", out.RoleLabel)
	assert.Equal(t, "UTC", out.Timezone)

	stored, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough")))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	r, _ := setup(t)
	body := CreateUserRequest{Name: "Sam", Email: "sam@agency.com", Password: "long-enough", Role: domain.RoleSupport}

	require.Equal(t, http.StatusCreated, testutil.DoJSON(r, http.MethodPost, "/api/users", body).Code)

	body.Email = "SAM@agency.com"
	w := testutil.DoJSON(r, http.MethodPost, "/api/users", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", testutil.ErrorCode(t, w))
}

func TestCreateUser_InvalidRole(t *testing.T) {
	r, _ := setup(t)

	w := testutil.DoJSON(r, http.MethodPost, "/api/users", map[string]string{
		"name": "Sam", "email": "sam@agency.com", "password": "long-enough", "role": "CEO",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"role"`)
}

func TestUpdateUser_Partial(t *testing.T) {
	r, repo := setup(t)
	u := &domain.User{Name: "Sam", Email: "sam@agency.com", PasswordHash: "x", Role: domain.RoleDeveloper, Timezone: "UTC"}
	require.NoError(t, repo.Create(context.Background(), u))

	w := testutil.DoJSON(r, http.MethodPatch, "/api/users/"+u.ID, map[string]string{"role": "ADMIN"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out domain.User
	testutil.Data(t, w, &out)
	assert.Equal(t, domain.RoleAdmin, out.Role)
	assert.Equal(t, "Sam", out.Name)
	assert.Equal(t, "sam@agency.com", out.Email)
}

func TestUserNotFound(t *testing.T) {
	r, _ := setup(t)

	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(r, http.MethodGet, "/api/users/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(r, http.MethodPatch, "/api/users/missing", map[string]string{"name": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(r, http.MethodDelete, "/api/users/missing", nil).Code)
}

func TestListUsers_FilterByRole(t *testing.T) {
	r, repo := setup(t)
	require.NoError(t, repo.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@agency.com", PasswordHash: "x", Role: domain.RoleFinance}))
	require.NoError(t, repo.Create(context.Background(), &domain.User{Name: "Ben", Email: "ben@agency.com", PasswordHash: "x", Role: domain.RoleDeveloper}))

	w := testutil.DoJSON(r, http.MethodGet, "/api/users?role=FINANCE", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []domain.User
	testutil.Data(t, w, &out)
	require.Len(t, out, 1)
	assert.Equal(t, "Ana", out[0].Name)
}

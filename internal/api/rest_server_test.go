package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/auth"
	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/pokedex"
)

type testEnv struct {
	server      *RestServer
	userRepo    *auth.MemoryUserRepo
	pokemonRepo *pokedex.MemoryPokemonRepo
	tokens      *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewTokenService("unit-test-secret", time.Hour)
	require.NoError(t, err)

	userRepo := auth.NewMemoryUserRepo()
	pokemonRepo := pokedex.NewMemoryPokemonRepo()

	server := NewRestServer(Config{
		Port:                 3000,
		UserRepo:             userRepo,
		PokemonRepo:          pokemonRepo,
		Tokens:               tokens,
		DisableObservability: true,
	})

	return &testEnv{
		server:      server,
		userRepo:    userRepo,
		pokemonRepo: pokemonRepo,
		tokens:      tokens,
	}
}

// createUser registers an account directly in the repository and returns it
// with a freshly issued token.
func (env *testEnv) createUser(t *testing.T, email string, role auth.Role) (*auth.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user, err := env.userRepo.Create(context.Background(), email, "Test User", hash, role)
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID, user.Role)
	require.NoError(t, err)

	return user, token
}

func (env *testEnv) seedPokemons(t *testing.T, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		p := &pokedex.Pokemon{
			ID:   i,
			Name: pokedex.Name{English: fmt.Sprintf("Pokemon %d", i)},
			Type: []string{"normal"},
		}
		require.NoError(t, env.pokemonRepo.Create(context.Background(), p))
	}
}

func (env *testEnv) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.server.Router().ServeHTTP(w, req)
	return w
}

// issueExpired signs a token with the given secret whose expiry already
// passed, bypassing the service's own TTL handling.
func issueExpired(t *testing.T, secret, userID string) string {
	t.Helper()
	claims := &auth.Claims{
		Role: auth.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	t.Run("creates user without exposing the password hash", func(t *testing.T) {
		w := env.request("POST", "/auth/register",
			`{"email":"ash@example.com","name":"Ash","password":"pikachu1"}`, "")
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "ash@example.com", user["email"])
		assert.Equal(t, "user", user["role"])
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("duplicate email yields 409 and no second record", func(t *testing.T) {
		w := env.request("POST", "/auth/register",
			`{"email":"ash@example.com","name":"Imposter","password":"other"}`, "")
		require.Equal(t, http.StatusConflict, w.Code)

		stored, err := env.userRepo.GetByEmail(context.Background(), "ash@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Ash", stored.Name)
	})

	t.Run("missing fields yield 400", func(t *testing.T) {
		w := env.request("POST", "/auth/register", `{"email":"x@example.com"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown role yields 400", func(t *testing.T) {
		w := env.request("POST", "/auth/register",
			`{"email":"y@example.com","name":"Y","password":"p","role":"superuser"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "misty@example.com", auth.RoleUser)

	t.Run("valid credentials yield a token", func(t *testing.T) {
		w := env.request("POST", "/auth/login",
			`{"email":"misty@example.com","password":"password123"}`, "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		token, ok := body["token"].(string)
		require.True(t, ok, "token missing from login response")

		claims, err := env.tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleUser, claims.Role)
	})

	t.Run("wrong password yields 401", func(t *testing.T) {
		w := env.request("POST", "/auth/login",
			`{"email":"misty@example.com","password":"wrong"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email yields 401", func(t *testing.T) {
		w := env.request("POST", "/auth/login",
			`{"email":"nobody@example.com","password":"password123"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields yield 400", func(t *testing.T) {
		w := env.request("POST", "/auth/login", `{"email":"misty@example.com"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing token yields 401", func(t *testing.T) {
		w := env.request("GET", "/auth/profile", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage bearer token yields 401 on every guarded route", func(t *testing.T) {
		guarded := []struct{ method, path string }{
			{"GET", "/auth/profile"},
			{"PUT", "/auth/setScore"},
			{"GET", "/auth/getScore"},
			{"POST", "/pokemons"},
			{"PUT", "/pokemons/1"},
			{"DELETE", "/pokemons/1"},
		}
		for _, route := range guarded {
			w := env.request(route.method, route.path, "", "garbage")
			assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
		}
	})

	t.Run("malformed authorization header yields 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/auth/profile", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		env.server.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token yields 401 with the expiry reason", func(t *testing.T) {
		user, _ := env.createUser(t, "expired@example.com", auth.RoleUser)

		token := issueExpired(t, "unit-test-secret", user.ID)
		w := env.request("GET", "/auth/profile", "", token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Expired")
	})
}

func TestRoleGate(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.createUser(t, "user@example.com", auth.RoleUser)
	_, adminToken := env.createUser(t, "admin@example.com", auth.RoleAdmin)

	pokemonBody := `{"id":1,"name":{"english":"Bulbasaur"},"type":["Grass","Poison"],
		"stats":{"hp":45,"attack":49,"defense":49,"specialAttack":65,"specialDefense":65,"speed":45}}`

	t.Run("absent token yields 401", func(t *testing.T) {
		w := env.request("POST", "/pokemons", pokemonBody, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-admin token yields 403", func(t *testing.T) {
		w := env.request("POST", "/pokemons", pokemonBody, userToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin token passes", func(t *testing.T) {
		w := env.request("POST", "/pokemons", pokemonBody, adminToken)
		require.Equal(t, http.StatusCreated, w.Code)

		created, err := env.pokemonRepo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"grass", "poison"}, created.Type)
	})
}

func TestProfileAndScore(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "brock@example.com", auth.RoleUser)

	t.Run("profile returns the caller's record", func(t *testing.T) {
		w := env.request("GET", "/auth/profile", "", token)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		profile := body["user"].(map[string]interface{})
		assert.Equal(t, user.Email, profile["email"])
	})

	t.Run("setScore writes and getScore reads it back", func(t *testing.T) {
		w := env.request("PUT", "/auth/setScore", `{"score":150}`, token)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.request("GET", "/auth/getScore", "", token)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(150), body["score"])
	})

	t.Run("non-integer score yields 400 and leaves the score unchanged", func(t *testing.T) {
		w := env.request("PUT", "/auth/setScore", `{"score":"abc"}`, token)
		require.Equal(t, http.StatusBadRequest, w.Code)

		stored, err := env.userRepo.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, 150, stored.Score)
	})

	t.Run("missing score field yields 400", func(t *testing.T) {
		w := env.request("PUT", "/auth/setScore", `{}`, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("identity deleted out-of-band yields 404", func(t *testing.T) {
		ghost, ghostToken := env.createUser(t, "ghost@example.com", auth.RoleUser)
		env.userRepo.Delete(ghost.ID)

		w := env.request("GET", "/auth/profile", "", ghostToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.request("GET", "/auth/getScore", "", ghostToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.request("PUT", "/auth/setScore", `{"score":1}`, ghostToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListPokemons(t *testing.T) {
	env := newTestEnv(t)
	env.seedPokemons(t, 20)

	t.Run("second page holds the remainder", func(t *testing.T) {
		w := env.request("GET", "/pokemons?page=2&limit=12", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, float64(20), body["total"])
		assert.Equal(t, float64(2), body["page"])
		assert.Equal(t, float64(2), body["totalPages"])
		assert.Len(t, body["pokemons"], 8)
	})

	t.Run("page zero behaves like page one", func(t *testing.T) {
		w0 := env.request("GET", "/pokemons?page=0&limit=12", "", "")
		w1 := env.request("GET", "/pokemons?page=1&limit=12", "", "")
		require.Equal(t, http.StatusOK, w0.Code)
		assert.JSONEq(t, w1.Body.String(), w0.Body.String())
	})

	t.Run("defaults apply without query parameters", func(t *testing.T) {
		w := env.request("GET", "/pokemons", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["page"])
		assert.Len(t, body["pokemons"], 12)
	})
}

func TestGetTypes(t *testing.T) {
	env := newTestEnv(t)

	w := env.request("GET", "/pokemons/types", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["types"], 18)
}

func TestPokemonCRUD(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.createUser(t, "admin@example.com", auth.RoleAdmin)
	env.seedPokemons(t, 5)

	t.Run("get by id", func(t *testing.T) {
		w := env.request("GET", "/pokemons/3", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, float64(3), body["id"])
	})

	t.Run("get missing id yields 404", func(t *testing.T) {
		w := env.request("GET", "/pokemons/99", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("create duplicate id yields 400", func(t *testing.T) {
		w := env.request("POST", "/pokemons",
			`{"id":3,"name":{"english":"Dup"},"type":["normal"]}`, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create with unknown type yields 400", func(t *testing.T) {
		w := env.request("POST", "/pokemons",
			`{"id":6,"name":{"english":"Glitch"},"type":["plasma"]}`, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update is partial", func(t *testing.T) {
		w := env.request("PUT", "/pokemons/2", `{"image":"sprites/2.png"}`, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		updated, err := env.pokemonRepo.GetByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "sprites/2.png", updated.Image)
		assert.Equal(t, "Pokemon 2", updated.Name.English)
	})

	t.Run("update missing id yields 404", func(t *testing.T) {
		w := env.request("PUT", "/pokemons/99", `{"image":"x.png"}`, adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete renumbers the catalog", func(t *testing.T) {
		w := env.request("DELETE", "/pokemons/3", "", adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		deleted := body["pokemon"].(map[string]interface{})
		assert.Equal(t, float64(3), deleted["id"])

		// Ids {1,2,3,4,5} minus 3 must become exactly {1,2,3,4}.
		remaining, err := env.pokemonRepo.List(context.Background(), 0, 10)
		require.NoError(t, err)
		require.Len(t, remaining, 4)
		for i, p := range remaining {
			assert.Equal(t, i+1, p.ID)
		}
		// Old id 4 now sits at id 3.
		assert.Equal(t, "Pokemon 4", remaining[2].Name.English)
	})

	t.Run("delete missing id yields 404 and changes nothing", func(t *testing.T) {
		w := env.request("DELETE", "/pokemons/42", "", adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		total, err := env.pokemonRepo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
	})
}

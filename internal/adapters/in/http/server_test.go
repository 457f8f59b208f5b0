package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/authbridge"
	"parceltrack/internal/adapters/out/kv/parcelrepo"
	"parceltrack/internal/adapters/out/kv/profilerepo"
	redisadapter "parceltrack/internal/adapters/out/redis"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	echo     *echo.Echo
	verifier *authbridge.TokenVerifier
	mr       *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redisadapter.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	store := redisadapter.NewStore(client, time.Second)

	parcels := parcelrepo.NewRepository(store)
	profiles := profilerepo.NewRepository(store)
	gate := services.NewAccessGate()
	verifier := authbridge.NewTokenVerifier(testSecret)

	server := httpadapter.NewServer(
		commands.NewRegisterParcelCommandHandler(gate, parcels),
		commands.NewUpdateParcelStatusCommandHandler(gate, parcels),
		queries.NewGetParcelByReferenceQueryHandler(gate, parcels),
		queries.NewListParcelsQueryHandler(gate, parcels),
		profiles,
		verifier,
	)

	e := echo.New()
	e.HideBanner = true
	server.RegisterRoutes(e)

	return &testEnv{echo: e, verifier: verifier, mr: mr}
}

func (env *testEnv) token(t *testing.T, id kernel.UUID, metadata user.Metadata) string {
	t.Helper()
	token, err := env.verifier.IssueToken(authbridge.Identity{UserID: id, Metadata: metadata}, time.Hour)
	require.NoError(t, err)
	return token
}

func (env *testEnv) driverToken(t *testing.T, id kernel.UUID) string {
	t.Helper()
	return env.token(t, id, user.Metadata{FullName: "Ravi Kumar", Role: "driver", Phone: "9876543210"})
}

func (env *testEnv) officialToken(t *testing.T, id kernel.UUID) string {
	t.Helper()
	return env.token(t, id, user.Metadata{FullName: "Dispatch Desk", Role: "official"})
}

func (env *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func registerBody() string {
	return `{
		"sender_name": "Asha Patel", "sender_address": "12 Harbor Lane", "sender_contact": "555-0100",
		"receiver_name": "Ben Osei", "receiver_address": "9 Mill Road", "receiver_contact": "555-0101",
		"items": [{"name": "Laptop", "category": "electronics", "declared_value": 1200, "weight_kg": 2.1}]
	}`
}

func (env *testEnv) registerParcel(t *testing.T, token string) httpadapter.ParcelResponse {
	t.Helper()
	rec := env.do(http.MethodPost, "/api/v1/parcels", token, registerBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created httpadapter.ParcelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_RegisterParcel(t *testing.T) {
	env := newTestEnv(t)
	driver := kernel.NewUUID()

	t.Run("driver registers a parcel", func(t *testing.T) {
		created := env.registerParcel(t, env.driverToken(t, driver))

		assert.Equal(t, driver.String(), created.DriverID)
		assert.Equal(t, "registered", created.Status)
		assert.Regexp(t, `^NEWDAY-[0-9A-Z]+-[0-9A-Z]{4}$`, created.ReferenceNumber)
		assert.Len(t, created.Items, 1)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/parcels", "", registerBody())
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("official may not register", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/parcels", env.officialToken(t, kernel.NewUUID()), registerBody())
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("empty item list is a bad request", func(t *testing.T) {
		body := `{
			"sender_name": "A", "sender_address": "B", "sender_contact": "C",
			"receiver_name": "D", "receiver_address": "E", "receiver_contact": "F",
			"items": []
		}`
		rec := env.do(http.MethodPost, "/api/v1/parcels", env.driverToken(t, driver), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown category is a bad request", func(t *testing.T) {
		body := strings.Replace(registerBody(), "electronics", "livestock", 1)
		rec := env.do(http.MethodPost, "/api/v1/parcels", env.driverToken(t, driver), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_GetParcelByReference(t *testing.T) {
	env := newTestEnv(t)
	owner := kernel.NewUUID()
	created := env.registerParcel(t, env.driverToken(t, owner))

	t.Run("any authenticated driver resolves the code", func(t *testing.T) {
		other := env.driverToken(t, kernel.NewUUID())
		rec := env.do(http.MethodGet, "/api/v1/parcels/"+created.ReferenceNumber, other, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var found httpadapter.ParcelResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/parcels/NEWDAY-ZZZZZZZZ-AAAA", env.driverToken(t, owner), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed code is not found, not a validation error", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/parcels/bogus", env.driverToken(t, owner), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unauthenticated lookup is rejected", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/parcels/"+created.ReferenceNumber, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestServer_ListParcels(t *testing.T) {
	env := newTestEnv(t)
	driverA := kernel.NewUUID()
	driverB := kernel.NewUUID()

	first := env.registerParcel(t, env.driverToken(t, driverA))
	second := env.registerParcel(t, env.driverToken(t, driverA))
	env.registerParcel(t, env.driverToken(t, driverB))

	t.Run("driver sees only their own, in registration order", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/parcels", env.driverToken(t, driverA), "")
		require.Equal(t, http.StatusOK, rec.Code)

		var listed []httpadapter.ParcelResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		require.Len(t, listed, 2)
		assert.Equal(t, first.ID, listed[0].ID)
		assert.Equal(t, second.ID, listed[1].ID)
	})

	t.Run("official sees everything", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/parcels", env.officialToken(t, kernel.NewUUID()), "")
		require.Equal(t, http.StatusOK, rec.Code)

		var listed []httpadapter.ParcelResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		assert.Len(t, listed, 3)
	})
}

func TestServer_UpdateParcelStatus(t *testing.T) {
	env := newTestEnv(t)
	owner := kernel.NewUUID()
	created := env.registerParcel(t, env.driverToken(t, owner))
	statusPath := fmt.Sprintf("/api/v1/parcels/%s/status", created.ID)

	t.Run("owner moves the parcel forward", func(t *testing.T) {
		rec := env.do(http.MethodPut, statusPath, env.driverToken(t, owner), `{"status":"in_transit"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated httpadapter.ParcelResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "in_transit", updated.Status)
	})

	t.Run("foreign driver is forbidden", func(t *testing.T) {
		rec := env.do(http.MethodPut, statusPath, env.driverToken(t, kernel.NewUUID()), `{"status":"delivered"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("official completes the delivery", func(t *testing.T) {
		rec := env.do(http.MethodPut, statusPath, env.officialToken(t, kernel.NewUUID()), `{"status":"delivered"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("backward transition is a bad request", func(t *testing.T) {
		rec := env.do(http.MethodPut, statusPath, env.driverToken(t, owner), `{"status":"registered"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown status value is a bad request", func(t *testing.T) {
		rec := env.do(http.MethodPut, statusPath, env.driverToken(t, owner), `{"status":"lost"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown parcel id is not found", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/parcels/%s/status", kernel.NewUUID())
		rec := env.do(http.MethodPut, path, env.officialToken(t, kernel.NewUUID()), `{"status":"delivered"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed parcel id is not found", func(t *testing.T) {
		rec := env.do(http.MethodPut, "/api/v1/parcels/oops/status", env.officialToken(t, kernel.NewUUID()), `{"status":"delivered"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_GetProfile(t *testing.T) {
	env := newTestEnv(t)
	id := kernel.NewUUID()
	token := env.token(t, id, user.Metadata{
		Name:  "Ravi",
		Phone: "+91 98765 43210",
		Role:  "driver",
	})

	t.Run("first sight creates and persists the profile", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/profile", token, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var profile httpadapter.ProfileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		assert.Equal(t, id.String(), profile.ID)
		assert.Equal(t, "Ravi", profile.FullName)
		assert.Equal(t, "driver", profile.Role)

		// both the primary record and the phone index must exist
		_, err := env.mr.Get("user:" + id.String())
		require.NoError(t, err)
		rawID, err := env.mr.Get("user:phone:919876543210")
		require.NoError(t, err)
		assert.Equal(t, id.String(), rawID)
	})

	t.Run("second sight reads the stored profile", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/profile", token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var profile httpadapter.ProfileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		assert.Equal(t, id.String(), profile.ID)
	})

	t.Run("metadata without names falls back to Unknown User", func(t *testing.T) {
		anonymous := env.token(t, kernel.NewUUID(), user.Metadata{})
		rec := env.do(http.MethodGet, "/api/v1/profile", anonymous, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var profile httpadapter.ProfileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		assert.Equal(t, "Unknown User", profile.FullName)
		assert.Equal(t, "driver", profile.Role)
	})
}

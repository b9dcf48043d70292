package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp creates a minimal Iris app with the slots route and JWT verifier
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(mockAccessToken) })

	app.Get("/api/booking/slots", GetBookingSlots)

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, mockManagerOnlyMiddleware)
	{
		admin.Get("/slots", GetBookingSlots)
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

type mockAccessToken struct {
	ID   uint
	Role string
}

// mockManagerOnlyMiddleware uses mockAccessToken
func mockManagerOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*mockAccessToken)
	if claims.Role != "manager" && claims.Role != "admin" && claims.Role != "super_admin" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}
	ctx.Next()
}

// signTestToken returns a signed JWT with the given role
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(mockAccessToken{ID: 1, Role: role})
	return string(token)
}

func TestAdminRBAC(t *testing.T) {
	app := buildTestApp()

	// No token -> rejected by the verifier
	req := httptest.NewRequest(http.MethodGet, "/api/admin/slots", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Client role -> 403
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/slots", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("client"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client role, got %d", resp2.Code)
	}

	// Manager role -> 200
	req3 := httptest.NewRequest(http.MethodGet, "/api/admin/slots", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken("manager"))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager role, got %d", resp3.Code)
	}
}

func TestGetBookingSlotsPublic(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/booking/slots", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(body.Slots) != 19 {
		t.Fatalf("expected 19 slots, got %d", len(body.Slots))
	}
	if body.Slots[0] != "09:00" || body.Slots[len(body.Slots)-1] != "18:00" {
		t.Fatalf("unexpected slot window: %s .. %s", body.Slots[0], body.Slots[len(body.Slots)-1])
	}
}

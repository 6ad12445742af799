package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/tradecatalog/database"
	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/middleware"
	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/store"
	"github.com/princinho/tradecatalog/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "test-secret"

type fakeUploader struct {
	name string
	body string
}

func (f *fakeUploader) UploadImage(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.name, f.body = filename, string(raw)
	return "https://cdn.example.com/" + filename, nil
}

type harness struct {
	r         *gin.Engine
	auth      *store.AuthStore
	products  *store.MemoryProductStore
	enquiries *store.MemoryEnquiryStore
	flows     *store.FlowSessions
	uploader  *fakeUploader
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adminUser, err := utils.SeedAdmin("admin@example.com", "s3cret")
	require.NoError(t, err)
	local, err := store.NewLocalAuthenticator(adminUser, jwtSecret, time.Hour)
	require.NoError(t, err)

	h := &harness{
		auth:      store.NewAuthStore(local, database.NewMemoryStorage()),
		products:  store.NewMemoryProductStore(),
		enquiries: store.NewMemoryEnquiryStore(),
		flows:     store.NewFlowSessions(time.Hour),
		uploader:  &fakeUploader{},
	}
	h.products.Seed(
		[]models.ManufacturedProduct{
			{ProductBase: models.ProductBase{ID: "mfg-001", Name: "XR-5000", Category: "Power Electronics", Featured: true}},
			{ProductBase: models.ProductBase{ID: "mfg-002", Name: "SD-200", Category: "Motion Control"}},
		},
		[]models.TradingProduct{
			{ProductBase: models.ProductBase{ID: "trd-001", Name: "Relay", Category: "Relays"}, Type: "Electromechanical", Brand: "Omron"},
		},
	)

	v := utils.NewImageValidator(utils.UploadConfig{
		MaxSizeMB:  1,
		Extensions: []string{".png"},
		MimeTypes:  []string{"image/png"},
	})

	requireAdmin := middleware.AuthMiddleware(h.auth, jwtSecret)

	r := gin.New()
	r.POST("/auth/login", Login(h.auth))
	r.POST("/auth/logout", requireAdmin, Logout(h.auth))
	r.GET("/auth/session", GetSession(h.auth))
	r.POST("/enquiries", SubmitEnquiry(h.enquiries))
	r.POST("/contact", SubmitContact(h.enquiries))
	r.GET("/enquiry-flow", GetEnquiryFlow(h.flows))
	r.POST("/enquiry-flow/open", OpenEnquiryFlow(h.flows, h.products))
	r.POST("/enquiry-flow/close", CloseEnquiryFlow(h.flows))

	admin := r.Group("/admin", requireAdmin)
	admin.GET("/enquiries", GetEnquiries(h.enquiries))
	admin.GET("/enquiries/:id", GetEnquiry(h.enquiries))
	admin.PATCH("/enquiries/:id/status", UpdateEnquiryStatus(h.enquiries))
	admin.DELETE("/enquiries/:id", DeleteEnquiry(h.enquiries))
	admin.POST("/upload/image", UploadImage(v, h.uploader))

	for _, kind := range []models.ProductType{models.ProductTypeManufactured, models.ProductTypeTrading} {
		base := "/" + string(kind)
		r.GET(base, GetProducts(h.products, kind))
		r.GET(base+"/categories", GetCategories(h.products, kind))
		r.GET(base+"/:id", GetProduct(h.products, kind))
		admin.POST(base, AddProduct(h.products, kind))
		admin.PATCH(base+"/:id", UpdateProduct(h.products, kind))
		admin.DELETE(base+"/:id", DeleteProduct(h.products, kind))
	}
	h.r = r
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	return w
}

func (h *harness) login(t *testing.T) string {
	t.Helper()
	w := h.do(t, http.MethodPost, "/auth/login", dto.LoginDTO{Email: "admin@example.com", Password: "s3cret"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func TestLoginAndLogout(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/auth/login", dto.LoginDTO{Email: "admin@example.com", Password: "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(t, http.MethodPost, "/auth/login", gin.H{"email": "admin@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := h.login(t)
	session := func(token string) bool {
		return decode[map[string]bool](t, h.do(t, http.MethodGet, "/auth/session", nil, token))["authenticated"]
	}
	assert.True(t, session(token))
	assert.False(t, session(""))
	assert.False(t, session("someone-else"))
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/admin/enquiries", nil, token).Code)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/auth/logout", nil, token).Code)
	assert.False(t, h.auth.IsAuthenticated())
	assert.False(t, session(token))
	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/admin/enquiries", nil, token).Code)
}

func TestAnonymousLogoutKeepsSession(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodPost, "/auth/logout", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodPost, "/auth/logout", nil, "stale-token").Code)

	assert.True(t, h.auth.IsAuthenticated())
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/admin/enquiries", nil, token).Code)
}

func TestAdminRoutesNeedSessionToken(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/admin/enquiries", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/admin/enquiries", nil, "forged").Code)

	other, err := utils.GenerateAccessToken("intruder@example.com", "ADMIN", jwtSecret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodDelete, "/admin/manufactured/mfg-001", nil, other).Code)
	_, ok := h.products.GetManufacturedByID("mfg-001")
	assert.True(t, ok)
}

func TestProductListing(t *testing.T) {
	h := newHarness(t)

	list := decode[listResponse[models.ManufacturedProduct]](t, h.do(t, http.MethodGet, "/manufactured", nil, ""))
	assert.Equal(t, 2, list.Total)

	list = decode[listResponse[models.ManufacturedProduct]](t, h.do(t, http.MethodGet, "/manufactured?featured=true", nil, ""))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "mfg-001", list.Items[0].ID)

	list = decode[listResponse[models.ManufacturedProduct]](t, h.do(t, http.MethodGet, "/manufactured?featured=true&category=Power+Electronics", nil, ""))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "mfg-001", list.Items[0].ID)

	list = decode[listResponse[models.ManufacturedProduct]](t, h.do(t, http.MethodGet, "/manufactured?featured=true&q=sd", nil, ""))
	assert.Empty(t, list.Items)
	assert.Zero(t, list.Total)

	list = decode[listResponse[models.ManufacturedProduct]](t, h.do(t, http.MethodGet, "/manufactured?q=sd&category=all", nil, ""))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "mfg-002", list.Items[0].ID)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodGet, "/manufactured?featured=maybe", nil, "").Code)

	trading := decode[listResponse[models.TradingProduct]](t, h.do(t, http.MethodGet, "/trading?q=omron", nil, ""))
	require.Len(t, trading.Items, 1)
	assert.Equal(t, "Omron", trading.Items[0].Brand)

	w := h.do(t, http.MethodGet, "/trading/trd-001", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trading", decode[map[string]any](t, w)["productType"])

	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/trading/mfg-001", nil, "").Code)

	cats := decode[listResponse[models.Category]](t, h.do(t, http.MethodGet, "/manufactured/categories", nil, ""))
	assert.Equal(t, 2, cats.Total)
}

func TestProductAdminLifecycle(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	w := h.do(t, http.MethodPost, "/admin/trading", gin.H{
		"name":           "Contactor",
		"category":       "Relays",
		"type":           "AC Contactor",
		"brand":          "ABB",
		"specifications": gin.H{"Rated Current": "65A"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.TradingProduct](t, w)
	assert.True(t, strings.HasPrefix(created.ID, "trd-"))
	assert.Equal(t, "ABB", created.Brand)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/admin/trading", gin.H{"name": "No category"}, token).Code)

	w = h.do(t, http.MethodPatch, "/admin/trading/"+created.ID, gin.H{"brand": "Siemens"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Siemens", decode[models.TradingProduct](t, w).Brand)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPatch, "/admin/trading/"+created.ID, gin.H{}, token).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPatch, "/admin/trading/trd-missing", gin.H{"brand": "X"}, token).Code)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodDelete, "/admin/trading/"+created.ID, nil, token).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodDelete, "/admin/trading/"+created.ID, nil, token).Code)
	_, ok := h.products.GetTradingByID(created.ID)
	assert.False(t, ok)
}

func TestEnquirySubmissionAndAdmin(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/enquiries", gin.H{
		"name": "", "email": "not-an-email", "phone": "", "message": strings.Repeat("x", 1001),
		"productId": "mfg-001", "productName": "XR-5000", "productType": "manufactured",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, w)
	assert.Len(t, body.Errors, 4)
	assert.Equal(t, "Invalid email address", body.Errors["email"])

	w = h.do(t, http.MethodPost, "/enquiries", gin.H{
		"name": "Asha", "email": "asha@example.com", "phone": "12345", "message": "Quote please",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPost, "/enquiries", gin.H{
		"name": "Asha", "email": "asha@example.com", "phone": "12345", "message": "Quote please",
		"productId": "mfg-001", "productName": "XR-5000", "productType": "manufactured",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[models.Enquiry](t, w)
	assert.Equal(t, models.EnquiryStatusNew, first.Status)

	w = h.do(t, http.MethodPost, "/contact", gin.H{
		"name": "Ravi", "email": "ravi@example.com", "phone": "999", "product": "Servo drives", "message": "Call me",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	second := decode[models.Enquiry](t, w)

	token := h.login(t)
	list := decode[listResponse[models.Enquiry]](t, h.do(t, http.MethodGet, "/admin/enquiries", nil, token))
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.ID, list.Items[0].ID)
	assert.Equal(t, first.ID, list.Items[1].ID)

	w = h.do(t, http.MethodPatch, "/admin/enquiries/"+first.ID+"/status", gin.H{"status": "Contacted"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPatch, "/admin/enquiries/"+first.ID+"/status", gin.H{"status": "Won"}, token).Code)

	list = decode[listResponse[models.Enquiry]](t, h.do(t, http.MethodGet, "/admin/enquiries?status=Contacted", nil, token))
	require.Len(t, list.Items, 1)
	assert.Equal(t, first.ID, list.Items[0].ID)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodDelete, "/admin/enquiries/"+second.ID, nil, token).Code)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/admin/enquiries/"+second.ID, nil, token).Code)
}

// flow sends a dialog request as the visitor holding cookie; "" is a new visitor.
func (h *harness) flow(t *testing.T, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: FlowCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	return w
}

func flowCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == FlowCookie {
			return c.Value
		}
	}
	t.Fatalf("no %s cookie in response", FlowCookie)
	return ""
}

func TestEnquiryFlowRoutes(t *testing.T) {
	h := newHarness(t)

	w := h.flow(t, http.MethodPost, "/enquiry-flow/open", gin.H{"productId": "trd-001", "productType": "trading"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	visitor := flowCookie(t, w)
	flow := decode[models.EnquiryFlow](t, w)
	assert.True(t, flow.IsOpen)
	require.NotNil(t, flow.Product)
	assert.Equal(t, "Relay", flow.Product.Name)

	flow = decode[models.EnquiryFlow](t, h.flow(t, http.MethodGet, "/enquiry-flow", nil, visitor))
	require.NotNil(t, flow.Product)
	assert.Equal(t, "trd-001", flow.Product.ID)

	assert.Equal(t, http.StatusNotFound, h.flow(t, http.MethodPost, "/enquiry-flow/open", gin.H{"productId": "trd-404", "productType": "trading"}, visitor).Code)
	assert.Equal(t, http.StatusBadRequest, h.flow(t, http.MethodPost, "/enquiry-flow/open", gin.H{"productId": "trd-001", "productType": "service"}, visitor).Code)

	w = h.flow(t, http.MethodPost, "/enquiry-flow/close", nil, visitor)
	require.Equal(t, http.StatusOK, w.Code)
	flow = decode[models.EnquiryFlow](t, h.flow(t, http.MethodGet, "/enquiry-flow", nil, visitor))
	assert.False(t, flow.IsOpen)
	assert.Nil(t, flow.Product)
	assert.Zero(t, h.flows.Len())
}

func TestEnquiryFlowIsPerVisitor(t *testing.T) {
	h := newHarness(t)

	w := h.flow(t, http.MethodPost, "/enquiry-flow/open", gin.H{"productId": "mfg-001", "productType": "manufactured"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := flowCookie(t, w)

	flow := decode[models.EnquiryFlow](t, h.flow(t, http.MethodGet, "/enquiry-flow", nil, ""))
	assert.False(t, flow.IsOpen)
	assert.Nil(t, flow.Product)

	w = h.flow(t, http.MethodPost, "/enquiry-flow/open", gin.H{"productId": "trd-001", "productType": "trading"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	second := flowCookie(t, w)
	assert.NotEqual(t, first, second)

	assert.Equal(t, "mfg-001", decode[models.EnquiryFlow](t, h.flow(t, http.MethodGet, "/enquiry-flow", nil, first)).Product.ID)
	assert.Equal(t, "trd-001", decode[models.EnquiryFlow](t, h.flow(t, http.MethodGet, "/enquiry-flow", nil, second)).Product.ID)

	require.Equal(t, http.StatusOK, h.flow(t, http.MethodPost, "/enquiry-flow/close", nil, second).Code)
	assert.True(t, decode[models.EnquiryFlow](t, h.flow(t, http.MethodGet, "/enquiry-flow", nil, first)).IsOpen)
}

func TestUploadImageRoute(t *testing.T) {
	h := newHarness(t)
	token := h.login(t)

	upload := func(name string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("image", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/admin/upload/image", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.r.ServeHTTP(w, req)
		return w
	}

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	w := upload("front.png", png)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "https://cdn.example.com/front.png", decode[map[string]string](t, w)["url"])
	assert.Equal(t, string(png), h.uploader.body)

	assert.Equal(t, http.StatusBadRequest, upload("notes.txt", []byte("hello")).Code)
	assert.Equal(t, http.StatusBadRequest, upload("fake.png", []byte("hello")).Code)
}

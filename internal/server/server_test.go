package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoys/internal/admin"
	authdomain "github.com/smallbiznis/invoys/internal/auth/domain"
	authrepo "github.com/smallbiznis/invoys/internal/auth/repository"
	"github.com/smallbiznis/invoys/internal/auth/session"
	authsvc "github.com/smallbiznis/invoys/internal/auth/service"
	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
	businessrepo "github.com/smallbiznis/invoys/internal/business/repository"
	businesssvc "github.com/smallbiznis/invoys/internal/business/service"
	"github.com/smallbiznis/invoys/internal/businessctx"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	clientrepo "github.com/smallbiznis/invoys/internal/client/repository"
	clientsvc "github.com/smallbiznis/invoys/internal/client/service"
	"github.com/smallbiznis/invoys/internal/config"
	"github.com/smallbiznis/invoys/internal/dashboard"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	invoicerepo "github.com/smallbiznis/invoys/internal/invoice/repository"
	invoicesvc "github.com/smallbiznis/invoys/internal/invoice/service"
	obsmetrics "github.com/smallbiznis/invoys/internal/observability/metrics"
	paymentdomain "github.com/smallbiznis/invoys/internal/payment/domain"
	paymentrepo "github.com/smallbiznis/invoys/internal/payment/repository"
	paymentsvc "github.com/smallbiznis/invoys/internal/payment/service"
	portaldomain "github.com/smallbiznis/invoys/internal/portal/domain"
	portalrepo "github.com/smallbiznis/invoys/internal/portal/repository"
	portalsvc "github.com/smallbiznis/invoys/internal/portal/service"
	"github.com/smallbiznis/invoys/internal/providers/pdf"
	"github.com/smallbiznis/invoys/pkg/db"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.Profile{},
		&authdomain.Session{},
		&businessdomain.Business{},
		&businessdomain.BusinessUser{},
		&clientdomain.Client{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&invoicedomain.InvoiceSequence{},
		&paymentdomain.Payment{},
		&portaldomain.ClientPortalAccess{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	holder, err := config.NewInvoiceDefaultsHolder()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}

	log := zap.NewNop()
	cfg := config.Config{AppName: "invoys", Environment: "test", HTTPAddr: ":0"}

	auth := authsvc.New(log, authrepo.NewRepository(conn), node)
	business := businesssvc.NewService(conn, log, businessrepo.NewRepository(conn), node, holder)
	clients := clientsvc.NewService(log, clientrepo.NewRepository(conn), node)
	invoices := invoicesvc.NewService(conn, log, invoicerepo.NewRepository(conn), clientrepo.NewRepository(conn), business, holder, node)
	payments := paymentsvc.NewService(log, paymentrepo.NewRepository(conn), invoices, node)
	portal := portalsvc.NewService(log, portalrepo.NewRepository(conn), clientrepo.NewRepository(conn), payments, node)
	dash := dashboard.NewService(log, invoices, invoicerepo.NewRepository(conn), clientrepo.NewRepository(conn))
	adminSvc := admin.NewService(log, authrepo.NewRepository(conn), businessrepo.NewRepository(conn), invoicerepo.NewRepository(conn), clientrepo.NewRepository(conn))

	metrics, err := obsmetrics.NewHTTPMetrics()
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	engine := NewEngine(log, metrics)

	return NewServer(ServerParams{
		Gin:              engine,
		Cfg:              cfg,
		DB:               conn,
		Log:              log,
		GenID:            node,
		Sessions:         session.NewManager(cfg),
		Authsvc:          auth,
		Businesssvc:      business,
		BusinessSessions: businessctx.NewManager(business, log),
		Clientsvc:        clients,
		Invoicesvc:       invoices,
		Paymentsvc:       payments,
		Portalsvc:        portal,
		Dashboardsvc:     dash,
		Adminsvc:         adminSvc,
		PDFRenderer:      pdf.New(),
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: cookie})
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.DefaultCookieName && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func signupAndLogin(t *testing.T, s *Server, email string) string {
	t.Helper()

	w := doJSON(t, s, http.MethodPost, "/auth/signup", map[string]string{
		"email":        email,
		"password":     "correct-horse",
		"display_name": "Test User",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": "correct-horse",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", w.Code, w.Body.String())
	}
	return sessionCookie(t, w)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", w.Code)
	}
}

func TestAPIRejectsAnonymous(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/businesses", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSignupLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	cookie := signupAndLogin(t, s, "owner@acme.test")

	w := doJSON(t, s, http.MethodGet, "/auth/me", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if resp.User.Email != "owner@acme.test" {
		t.Fatalf("email = %q", resp.User.Email)
	}
}

func TestOnboardingAndInvoiceFlow(t *testing.T) {
	s := newTestServer(t)
	cookie := signupAndLogin(t, s, "owner@acme.test")

	w := doJSON(t, s, http.MethodPost, "/api/businesses", map[string]string{
		"name":  "Acme Studio",
		"email": "billing@acme.test",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("onboard status = %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/clients", map[string]string{
		"name":  "Ada Lovelace",
		"email": "ada@analytical.test",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client status = %d body=%s", w.Code, w.Body.String())
	}
	var client struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode client: %v", err)
	}

	w = doJSON(t, s, http.MethodPost, "/api/invoices", map[string]any{
		"client_id": client.ID,
		"items": []map[string]any{
			{"description": "Design", "quantity": 2, "rate": 1000},
			{"description": "Hosting", "quantity": 1, "rate": 500},
		},
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice status = %d body=%s", w.Code, w.Body.String())
	}
	var invoice struct {
		ID            string `json:"id"`
		InvoiceNumber string `json:"invoice_number"`
		TotalAmount   int64  `json:"total_amount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &invoice); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if invoice.TotalAmount != 2500 {
		t.Fatalf("total = %d, want 2500", invoice.TotalAmount)
	}
	if invoice.InvoiceNumber != "INV-0001" {
		t.Fatalf("number = %q, want INV-0001", invoice.InvoiceNumber)
	}

	w = doJSON(t, s, http.MethodGet, "/api/dashboard", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d body=%s", w.Code, w.Body.String())
	}
	var overview struct {
		TotalRevenue int64 `json:"total_revenue"`
		Outstanding  int64 `json:"outstanding"`
		InvoiceCount int   `json:"invoice_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.TotalRevenue != 2500 || overview.Outstanding != 2500 || overview.InvoiceCount != 1 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
}

func TestBusinessScopingDeniesForeignHeader(t *testing.T) {
	s := newTestServer(t)
	ownerCookie := signupAndLogin(t, s, "owner@acme.test")
	strangerCookie := signupAndLogin(t, s, "stranger@beta.test")

	w := doJSON(t, s, http.MethodPost, "/api/businesses", map[string]string{
		"name":  "Acme Studio",
		"email": "billing@acme.test",
	}, ownerCookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("onboard status = %d", w.Code)
	}
	var business struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &business); err != nil {
		t.Fatalf("decode business: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: strangerCookie})
	req.Header.Set(HeaderBusiness, business.ID)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestAdminOverviewRequiresFlag(t *testing.T) {
	s := newTestServer(t)
	cookie := signupAndLogin(t, s, "owner@acme.test")

	w := doJSON(t, s, http.MethodGet, "/admin/overview", nil, cookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	if err := s.db.Model(&authdomain.Profile{}).
		Where("1 = 1").
		Update("is_system_admin", true).Error; err != nil {
		t.Fatalf("promote user: %v", err)
	}

	w = doJSON(t, s, http.MethodGet, "/admin/overview", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestPortalFlow(t *testing.T) {
	s := newTestServer(t)
	ownerCookie := signupAndLogin(t, s, "owner@acme.test")

	w := doJSON(t, s, http.MethodPost, "/api/businesses", map[string]string{
		"name":  "Acme Studio",
		"email": "billing@acme.test",
	}, ownerCookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("onboard status = %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/clients", map[string]string{
		"name":  "Ada Lovelace",
		"email": "ada@analytical.test",
	}, ownerCookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client status = %d", w.Code)
	}
	var client struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode client: %v", err)
	}

	w = doJSON(t, s, http.MethodPost, "/api/invoices", map[string]any{
		"client_id": client.ID,
		"items":     []map[string]any{{"description": "Design", "quantity": 1, "rate": 2500}},
	}, ownerCookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice status = %d", w.Code)
	}
	var invoice struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &invoice); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}

	w = doJSON(t, s, http.MethodPost, "/api/portal-access", map[string]string{
		"client_id": client.ID,
		"email":     "ada@portal.test",
	}, ownerCookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("grant status = %d body=%s", w.Code, w.Body.String())
	}

	portalCookie := signupAndLogin(t, s, "ada@portal.test")

	w = doJSON(t, s, http.MethodGet, "/portal/invoices", nil, portalCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("portal list status = %d body=%s", w.Code, w.Body.String())
	}
	var listed struct {
		Invoices []struct {
			ID string `json:"id"`
		} `json:"invoices"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode portal invoices: %v", err)
	}
	if len(listed.Invoices) != 1 || listed.Invoices[0].ID != invoice.ID {
		t.Fatalf("unexpected portal invoices: %+v", listed)
	}

	w = doJSON(t, s, http.MethodPost, fmt.Sprintf("/portal/invoices/%s/pay", invoice.ID), map[string]string{
		"payment_method": "card",
		"client_comment": "paid online",
	}, portalCookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("portal pay status = %d body=%s", w.Code, w.Body.String())
	}
	var paid struct {
		PaidByClient bool  `json:"paid_by_client"`
		Amount       int64 `json:"amount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &paid); err != nil {
		t.Fatalf("decode payment: %v", err)
	}
	if !paid.PaidByClient || paid.Amount != 2500 {
		t.Fatalf("unexpected payment: %+v", paid)
	}

	var stored invoicedomain.Invoice
	if err := s.db.First(&stored, "id = ?", invoice.ID).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if stored.Status != invoicedomain.StatusPaid {
		t.Fatalf("status = %q, want paid", stored.Status)
	}
}

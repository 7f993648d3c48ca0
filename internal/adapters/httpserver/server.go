package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/oauth2"

	"github.com/kozoukioden/dusakabin-app/internal/cutlist"
	"github.com/kozoukioden/dusakabin-app/internal/domain"
	"github.com/kozoukioden/dusakabin-app/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	orders    *usecase.OrderUC
	rules     *usecase.RuleUC
	inventory *usecase.InventoryUC
	users     *usecase.UserUC
	oauthCfg  *oauth2.Config
}

func New(o *usecase.OrderUC, r *usecase.RuleUC, i *usecase.InventoryUC, u *usecase.UserUC, oauthCfg *oauth2.Config) http.Handler {
	s := &Server{mux: http.NewServeMux(), orders: o, rules: r, inventory: i, users: u, oauthCfg: oauthCfg}
	s.routes()
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/login", s.apiLogin)
	s.mux.HandleFunc("/api/logout", s.apiLogout)
	s.mux.HandleFunc("/api/me", s.apiMe)

	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)

	s.mux.HandleFunc("/api/orders", s.apiOrders)
	s.mux.HandleFunc("/api/orders/", s.apiOrderByID)
	s.mux.HandleFunc("/api/orders/export/csv", s.apiOrdersExportCSV)
	s.mux.HandleFunc("/api/production", s.apiProduction)

	s.mux.HandleFunc("/api/rules", s.apiRules)
	s.mux.HandleFunc("/api/rules/", s.apiRuleByID)
	s.mux.HandleFunc("/api/rules/test", s.apiRuleTest)

	s.mux.HandleFunc("/api/inventory", s.apiInventory)
	s.mux.HandleFunc("/api/inventory/", s.apiInventoryByID)
	s.mux.HandleFunc("/api/inventory/export/csv", s.apiInventoryExportCSV)

	s.mux.HandleFunc("/api/users", s.apiUsers)
	s.mux.HandleFunc("/api/users/", s.apiUserByID)

	s.mux.HandleFunc("/api/accounting", s.apiAccounting)

	s.mux.Handle("/metrics", promhttp.Handler())
}

// --- orders ---

func (s *Server) apiOrders(w http.ResponseWriter, r *http.Request) {
	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		f := domain.OrderFilter{
			Status: domain.OrderStatus(q.Get("status")),
			Series: domain.Series(q.Get("series")),
			Query:  q.Get("q"),
			Page:   atoiDefault(q.Get("page"), 1),
		}
		list, total, err := s.orders.List(r.Context(), f)
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list, "total": total})
	case http.MethodPost:
		var o domain.Order
		if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
			writeError(w, 400, errors.New("geçersiz json"))
			return
		}
		if err := s.orders.Create(r.Context(), &o); err != nil {
			var ce *cutlist.CompileError
			if errors.As(err, &ce) {
				writeError(w, 422, err)
				return
			}
			writeError(w, 400, err)
			return
		}
		writeJSON(w, 201, o)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiOrderByID(w http.ResponseWriter, r *http.Request) {
	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	parts := strings.Split(rest, "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		writeError(w, 400, errors.New("geçersiz sipariş id"))
		return
	}

	if len(parts) == 2 {
		switch parts[1] {
		case "status":
			s.apiOrderStatus(w, r, id)
			return
		case "cutlist.xlsx":
			s.apiOrderCutlistXLSX(w, r, id)
			return
		}
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		o, err := s.orders.Get(r.Context(), id)
		if err != nil {
			writeNotFoundOr500(w, err)
			return
		}
		writeJSON(w, 200, o)
	case http.MethodDelete:
		if !s.requireRole(w, r, domain.RoleAdmin) {
			return
		}
		if err := s.orders.Delete(r.Context(), id); err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, map[string]any{"status": "ok"})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiOrderStatus(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, errors.New("geçersiz json"))
		return
	}
	warnings, err := s.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			writeError(w, 409, err)
			return
		}
		writeNotFoundOr500(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok", "stockWarnings": warnings})
}

// apiOrderCutlistXLSX renders the order's frozen cutting list as a
// shop-floor spreadsheet.
func (s *Server) apiOrderCutlistXLSX(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	o, err := s.orders.Get(r.Context(), id)
	if err != nil {
		writeNotFoundOr500(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Kesim Listesi"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("%s - %s / %s / %s", o.CustomerName, o.Series, o.Model, o.ProfileColor))
	_ = f.SetCellValue(sheet, "A2", fmt.Sprintf("Ölçü: %g x %g x %g cm", o.Width, o.Height, o.DepthOrWidth()))

	headers := []string{"Parça", "Tip", "Ölçü", "Birim", "Adet", "Stok"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, item := range o.Items {
		measure := item.Val
		if item.Type == domain.ComponentGlass {
			measure = fmt.Sprintf("%g x %g", item.W, item.H)
		}
		values := []any{item.Name, string(item.Type), measure, item.Unit, item.Qty, item.StockName}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+5)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=kesim_%s.xlsx", o.ID.String()[:8]))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("xlsx yazılamadı")
	}
}

func (s *Server) apiOrdersExportCSV(w http.ResponseWriter, r *http.Request) {
	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}
	list, _, err := s.orders.List(r.Context(), domain.OrderFilter{PageSize: 10000})
	if err != nil {
		writeError(w, 500, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=siparisler_%s.csv", time.Now().Format("2006-01-02")))
	fmt.Fprintln(w, "id,customer,series,model,material,width,height,depth,status,total,created_at")
	for _, o := range list {
		depth := ""
		if o.Depth != nil {
			depth = fmt.Sprintf("%g", *o.Depth)
		}
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%g,%g,%s,%s,%.2f,%s\n",
			o.ID, strings.ReplaceAll(o.CustomerName, ",", " "), o.Series, o.Model, o.Material,
			o.Width, o.Height, depth, o.Status, o.TotalPrice, o.CreatedAt.Format(time.RFC3339))
	}
}

// apiProduction groups open orders by status for the shop-floor board.
func (s *Server) apiProduction(w http.ResponseWriter, r *http.Request) {
	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}
	list, _, err := s.orders.List(r.Context(), domain.OrderFilter{PageSize: 1000})
	if err != nil {
		writeError(w, 500, err)
		return
	}
	board := map[domain.OrderStatus][]domain.Order{}
	for _, o := range list {
		board[o.Status] = append(board[o.Status], o)
	}
	writeJSON(w, 200, board)
}

// --- rules (admin) ---

func (s *Server) apiRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if s.requireSession(w, r) == nil {
			return
		}
		list, err := s.rules.List(r.Context())
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list})
	case http.MethodPost:
		if !s.requireRole(w, r, domain.RoleAdmin) {
			return
		}
		var m domain.ManufacturingRule
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			writeError(w, 400, errors.New("geçersiz json"))
			return
		}
		if err := s.rules.Save(r.Context(), &m); err != nil {
			writeError(w, 422, err)
			return
		}
		writeJSON(w, 201, m)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiRuleByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/rules/"))
	if err != nil {
		writeError(w, 400, errors.New("geçersiz kural id"))
		return
	}
	switch r.Method {
	case http.MethodPut:
		var m domain.ManufacturingRule
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			writeError(w, 400, errors.New("geçersiz json"))
			return
		}
		m.ID = id
		if err := s.rules.Save(r.Context(), &m); err != nil {
			writeError(w, 422, err)
			return
		}
		writeJSON(w, 200, m)
	case http.MethodDelete:
		if err := s.rules.Delete(r.Context(), id); err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, map[string]any{"status": "ok"})
	default:
		http.Error(w, "method", 405)
	}
}

// apiRuleTest is the settings screen's formula preview: evaluate against
// trial dimensions without touching the catalog.
func (s *Server) apiRuleTest(w http.ResponseWriter, r *http.Request) {
	if s.requireSession(w, r) == nil {
		return
	}
	q := r.URL.Query()
	f := q.Get("formula")
	res, err := s.rules.Test(r.Context(), f, atofDefault(q.Get("w"), 100), atofDefault(q.Get("h"), 180), atofDefault(q.Get("d"), 0))
	if err != nil {
		writeError(w, 422, err)
		return
	}
	writeJSON(w, 200, map[string]any{"result": res})
}

// --- inventory ---

func (s *Server) apiInventory(w http.ResponseWriter, r *http.Request) {
	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		var (
			list []domain.InventoryItem
			err  error
		)
		if r.URL.Query().Get("low") == "1" {
			list, err = s.inventory.Low(r.Context())
		} else {
			list, err = s.inventory.List(r.Context())
		}
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list})
	case http.MethodPost:
		if !s.requireRole(w, r, domain.RoleAdmin) {
			return
		}
		var i domain.InventoryItem
		if err := json.NewDecoder(r.Body).Decode(&i); err != nil {
			writeError(w, 400, errors.New("geçersiz json"))
			return
		}
		if err := s.inventory.Save(r.Context(), &i); err != nil {
			writeError(w, 422, err)
			return
		}
		writeJSON(w, 201, i)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiInventoryByID(w http.ResponseWriter, r *http.Request) {
	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/inventory/")
	parts := strings.Split(rest, "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		writeError(w, 400, errors.New("geçersiz stok id"))
		return
	}

	if len(parts) == 2 && parts[1] == "adjust" {
		if r.Method != http.MethodPost {
			http.Error(w, "method", 405)
			return
		}
		var req struct {
			Delta int `json:"delta"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, 400, errors.New("geçersiz json"))
			return
		}
		item, err := s.inventory.Adjust(r.Context(), id, req.Delta)
		if err != nil {
			writeNotFoundOr500(w, err)
			return
		}
		writeJSON(w, 200, item)
		return
	}

	if r.Method == http.MethodDelete {
		if !s.requireRole(w, r, domain.RoleAdmin) {
			return
		}
		if err := s.inventory.Delete(r.Context(), id); err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, map[string]any{"status": "ok"})
		return
	}
	http.Error(w, "method", 405)
}

func (s *Server) apiInventoryExportCSV(w http.ResponseWriter, r *http.Request) {
	sess := s.requireSession(w, r)
	if sess == nil {
		return
	}
	list, err := s.inventory.List(r.Context())
	if err != nil {
		writeError(w, 500, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=stok_%s.csv", time.Now().Format("2006-01-02")))
	fmt.Fprintln(w, "name,category,quantity,unit,min_warning")
	for _, i := range list {
		fmt.Fprintf(w, "%s,%s,%d,%s,%d\n", strings.ReplaceAll(i.Name, ",", " "), i.Category, i.Quantity, i.Unit, i.MinWarning)
	}
}

// --- users (admin) ---

func (s *Server) apiUsers(w http.ResponseWriter, r *http.Request) {
	if !s.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := s.users.List(r.Context())
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list})
	case http.MethodPost:
		var req struct {
			domain.User
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, 400, errors.New("geçersiz json"))
			return
		}
		if err := s.users.Save(r.Context(), &req.User, req.Password); err != nil {
			writeError(w, 422, err)
			return
		}
		writeJSON(w, 201, req.User)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiUserByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/users/"))
	if err != nil {
		writeError(w, 400, errors.New("geçersiz kullanıcı id"))
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		writeError(w, 500, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

// --- accounting (admin) ---

func (s *Server) apiAccounting(w http.ResponseWriter, r *http.Request) {
	if !s.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	list, _, err := s.orders.List(r.Context(), domain.OrderFilter{PageSize: 10000})
	if err != nil {
		writeError(w, 500, err)
		return
	}
	var revenue float64
	statusCounts := map[domain.OrderStatus]int{}
	seriesCounts := map[domain.Series]int{}
	for _, o := range list {
		revenue += o.TotalPrice
		statusCounts[o.Status]++
		seriesCounts[o.Series]++
	}
	writeJSON(w, 200, map[string]any{
		"ordersCount":  len(list),
		"revenue":      revenue,
		"statusCounts": statusCounts,
		"seriesCounts": seriesCounts,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{"status": "error", "message": err.Error()})
}

func writeNotFoundOr500(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, 404, err)
		return
	}
	writeError(w, 500, err)
}

func atoiDefault(s string, def int) int {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n <= 0 {
		return def
	}
	return n
}

func atofDefault(s string, def float64) float64 {
	var f float64
	if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
		return def
	}
	return f
}

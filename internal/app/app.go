package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/kozoukioden/dusakabin-app/internal/adapters/httpserver"
	pgrepo "github.com/kozoukioden/dusakabin-app/internal/adapters/repo/postgres"
	"github.com/kozoukioden/dusakabin-app/internal/domain"
	"github.com/kozoukioden/dusakabin-app/internal/usecase"
)

type App struct {
	DB          *gorm.DB
	OrderUC     *usecase.OrderUC
	RuleUC      *usecase.RuleUC
	InventoryUC *usecase.InventoryUC
	UserUC      *usecase.UserUC
	OAuthConfig *oauth2.Config
}

func NewApp(db *gorm.DB) (*App, error) {
	orderRepo := pgrepo.NewOrderRepo(db)
	ruleRepo := pgrepo.NewRuleRepo(db)
	invRepo := pgrepo.NewInventoryRepo(db)
	userRepo := pgrepo.NewUserRepo(db)

	var oauthCfg *oauth2.Config
	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	app := &App{DB: db, OAuthConfig: oauthCfg}
	app.RuleUC = &usecase.RuleUC{Rules: ruleRepo}
	app.OrderUC = &usecase.OrderUC{Orders: orderRepo, Rules: ruleRepo, Inventory: invRepo}
	app.InventoryUC = &usecase.InventoryUC{Inventory: invRepo}
	app.UserUC = &usecase.UserUC{Users: userRepo}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.OrderUC, a.RuleUC, a.InventoryUC, a.UserUC, a.OAuthConfig)
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Order{}, &domain.ProductionItem{}, &domain.ManufacturingRule{}, &domain.InventoryItem{}, &domain.User{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_series ON orders(series)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_production_items_order_id ON production_items(order_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_manufacturing_rules_series ON manufacturing_rules(series)").Error

	if err := a.seedUsers(); err != nil {
		return err
	}
	if err := a.seedInventory(); err != nil {
		return err
	}
	return a.seedRules()
}

func (a *App) seedUsers() error {
	var count int64
	if err := a.DB.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	ctx := context.Background()
	defaults := []struct {
		username, name, password string
		role                     domain.Role
	}{
		{"admin", "Yönetici", "admin123", domain.RoleAdmin},
		{"usta", "Usta", "usta123", domain.RoleUsta},
	}
	for _, d := range defaults {
		u := domain.User{Username: d.username, Name: d.name, Role: d.role}
		if err := a.UserUC.Save(ctx, &u, d.password); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) seedInventory() error {
	var count int64
	if err := a.DB.Model(&domain.InventoryItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	ctx := context.Background()
	var items []domain.InventoryItem

	for _, color := range []string{"Parlak", "Antrasit"} {
		for _, name := range []string{"Boy Profili", "Duvar Dikmesi", "Alt Profil", "Üst Profil"} {
			items = append(items, domain.InventoryItem{
				Name: fmt.Sprintf("%s (%s)", name, color), Category: domain.CategoryAluminyum,
				Quantity: 20, Unit: "adet", MinWarning: 5,
			})
		}
	}
	for w := 10; w <= 85; w += 5 {
		items = append(items, domain.InventoryItem{
			Name: fmt.Sprintf("Sabit Cam %dcm", w), Category: domain.CategoryCam,
			Quantity: 10, Unit: "adet", MinWarning: 3,
		})
	}
	for _, name := range []string{"Tekerlek Takımı", "Rulman Seti", "Mıknatıs Suluk", "Havuz Fitili"} {
		items = append(items, domain.InventoryItem{
			Name: name, Category: domain.CategoryAksesuar, Quantity: 30, Unit: "adet", MinWarning: 10,
		})
	}

	for i := range items {
		if err := a.InventoryUC.Save(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

// seedRules installs a starter catalog per series. Saving through the
// usecase validates each formula and derives width dependence.
func (a *App) seedRules() error {
	var count int64
	if err := a.DB.Model(&domain.ManufacturingRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	ctx := context.Background()

	// series deduction in cm, recovered from shop practice
	deductions := map[domain.Series]string{
		domain.SeriesSuperlux: "9",
		domain.SeriesLiverno:  "2",
		domain.SeriesPratiko:  "2",
		domain.SeriesBella:    "6",
	}

	order := 0
	for _, series := range []domain.Series{domain.SeriesSuperlux, domain.SeriesLiverno, domain.SeriesPratiko, domain.SeriesBella} {
		ded := deductions[series]
		rules := []domain.ManufacturingRule{
			{ComponentName: "Alt Boy Profili", Type: domain.ComponentProfile, Formula: "W - " + ded, Quantity: 1, StockName: "Alt Profil"},
			{ComponentName: "Üst Boy Profili", Type: domain.ComponentProfile, Formula: "W - " + ded, Quantity: 1, StockName: "Üst Profil"},
			{ComponentName: "Duvar Dikmesi", Type: domain.ComponentProfile, Formula: "191", Quantity: 2, StockName: "Duvar Dikmesi"},
			{ComponentName: "Sabit Cam", Type: domain.ComponentGlass, Formula: "ROUND5((W / 2) - 2)", Quantity: 1, Material: domain.MaterialCam},
			{ComponentName: "Çalışır Cam", Type: domain.ComponentGlass, Formula: "ROUND5((W / 2) - 2)", Quantity: 1, Material: domain.MaterialCam},
			{ComponentName: "Tekerlek Takımı", Type: domain.ComponentAccessory, Formula: "0", Quantity: 2, StockName: "Tekerlek Takımı"},
			{ComponentName: "Mıknatıs Suluk", Type: domain.ComponentAccessory, Formula: "H", Quantity: 2, StockName: "Mıknatıs Suluk"},
		}
		for i := range rules {
			rules[i].Series = series
			rules[i].DisplayOrder = order
			order++
			if err := a.RuleUC.Save(ctx, &rules[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

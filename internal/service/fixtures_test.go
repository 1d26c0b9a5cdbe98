package service

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository/memory"
)

var testCatalogConfig = config.CatalogConfig{
	DefaultPageSize:   20,
	MaxPageSize:       50,
	PopularWindowDays: 30,
	PopularOverfetch:  10,
	GroupedFetchLimit: 5000,
}

func strPtr(s string) *string { return &s }

func product(id, shop, name, slug, category string, price int64, qty int) *domain.CatalogItem {
	it := &domain.CatalogItem{
		ID:          id,
		ShopCode:    shop,
		Name:        name,
		RetailPrice: decimal.NewFromInt(price),
		Quantity:    qty,
		IsActive:    true,
	}
	if slug != "" {
		it.Slug = strPtr(slug)
	}
	if category != "" {
		it.CategoryID = strPtr(category)
	}
	return it
}

func category(id, shop string, parent *string, level int, name, path string) *domain.CatalogCategory {
	return &domain.CatalogCategory{
		ID:       id,
		ShopCode: shop,
		Name:     name,
		ParentID: parent,
		Level:    level,
		FullPath: path,
		IsActive: true,
	}
}

// seedStore builds a two-shop catalog:
//
//	shop1: Devices > Pods (OXVA 1000 x3), Liquids (HUSKY 450 x5)
//	shop2: Devices > Pods (OXVA 1200 x0)
func seedStore() *memory.Store {
	s := memory.NewStore()
	s.AddShops(
		&domain.ShopLocation{ShopCode: "shop1", Name: "Центральный", City: "Москва", IsActive: true, Priority: 1},
		&domain.ShopLocation{ShopCode: "shop2", Name: "Северный", City: "Москва", IsActive: true, Priority: 2},
	)
	s.AddCategories(
		category("dev", "shop1", nil, 0, "Devices", "Devices"),
		category("pods", "shop1", strPtr("dev"), 1, "Pods", "Devices > Pods"),
		category("liq", "shop1", nil, 0, "Liquids", "Liquids"),
		category("dev", "shop2", nil, 0, "Devices", "Devices"),
		category("pods", "shop2", strPtr("dev"), 1, "Pods", "Devices > Pods"),
	)
	s.AddItems(
		product("a1", "shop1", "POD Система OXVA", "pod_sistema_oxva_shop1", "pods", 1000, 3),
		product("b7", "shop2", "POD Система OXVA", "pod_sistema_oxva_shop2", "pods", 1200, 0),
		product("h1", "shop1", "Жидкость HUSKY Ice", "zhidkost_husky_ice_shop1", "liq", 450, 5),
	)
	now := time.Now()
	s.AddPurchase(now.AddDate(0, 0, -2), memory.PurchaseLine{ProductName: "Жидкость HUSKY Ice", Quantity: 4})
	s.AddPurchase(now.AddDate(0, 0, -3), memory.PurchaseLine{ProductName: "POD Система OXVA", Quantity: 1})
	s.AddPurchase(now.AddDate(0, 0, -5), memory.PurchaseLine{ProductName: "Снятый с продажи", Quantity: 9})
	return s
}

func testRepos() *repository.Repositories {
	return memory.NewRepositories(seedStore())
}

var testLogger = zap.NewNop()

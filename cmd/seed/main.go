package main

import (
	"context"
	"log"
	"time"

	"thenest/internal/config"
	"thenest/internal/database"
	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	if err := db.Transaction(func(tx *gorm.DB) error { return seed(ctx, tx) }); err != nil {
		log.Fatal("seed failed:", err)
	}
	log.Println("Seed completed")
}

func seed(ctx context.Context, tx *gorm.DB) error {
	var n int64
	if err := tx.Model(&domain.Session{}).Where("slug = ?", "demo-lan").Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Println("Demo session already present, nothing to do")
		return nil
	}

	log.Println("Creating admin account...")
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{
		Email:        "admin@thenest.local",
		PasswordHash: string(hash),
		Name:         "Správce",
		Role:         domain.RoleAdmin,
		Status:       domain.UserApproved,
	}
	if err := tx.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		return err
	}
	log.Println("Admin: admin@thenest.local / admin12345")

	log.Println("Creating demo session...")
	start := time.Now().Truncate(24*time.Hour).AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 3)
	sess := domain.Session{
		Name:                   "Demo LAN",
		Slug:                   "demo-lan",
		Description:            "Víkendová LAN party",
		StartDate:              start,
		EndDate:                &end,
		StartTime:              "18:00",
		EndTime:                "12:00",
		PricePerNight:          decimal.NewFromInt(300),
		SurchargeEnabled:       true,
		HardwarePricingEnabled: true,
		MenuEnabled:            true,
		Status:                 domain.SessionUpcoming,
	}
	if err := tx.Create(&sess).Error; err != nil {
		return err
	}
	if err := repository.NewSettingsRepository(tx).SetActiveSession(ctx, &sess.ID); err != nil {
		return err
	}

	log.Println("Creating products...")
	products := []domain.Product{
		{Name: "Pivo Plzeň", Price: decimal.NewFromInt(45), Category: "drinks"},
		{Name: "Kofola", Price: decimal.NewFromInt(30), Category: "drinks"},
		{Name: "Red Bull", Price: decimal.NewFromInt(55), Category: "drinks"},
		{Name: "Chipsy", Price: decimal.NewFromInt(35), Category: "snacks"},
		{Name: "Tatranka", Price: decimal.NewFromInt(20), Category: "snacks"},
	}
	for i := range products {
		products[i].IsAvailable = true
	}
	if err := tx.Create(&products).Error; err != nil {
		return err
	}

	log.Println("Creating hardware...")
	hardware := []domain.HardwareItem{
		{Name: "Herní PC Ryzen 7", Type: domain.HardwarePC, Category: "pc", PricePerNight: decimal.NewFromInt(250), Quantity: 4, Specs: "Ryzen 7 5800X, RTX 3070, 32 GB"},
		{Name: "Monitor Dell 27\"", Type: domain.HardwareMonitor, Category: "monitor", PricePerNight: decimal.NewFromInt(80), Quantity: 6},
		{Name: "Herní židle", Type: domain.HardwareOther, Category: "furniture", PricePerNight: decimal.NewFromInt(40), Quantity: 8},
	}
	for i := range hardware {
		hardware[i].IsAvailable = true
	}
	if err := tx.Create(&hardware).Error; err != nil {
		return err
	}

	log.Println("Creating games...")
	games := []domain.Game{
		{Name: "Counter-Strike 2", Genre: "FPS", MaxPlayers: 10},
		{Name: "Age of Empires II", Genre: "RTS", MaxPlayers: 8},
		{Name: "Rocket League", Genre: "Sport", MaxPlayers: 8},
	}
	for i := range games {
		games[i].IsActive = true
	}
	if err := tx.Create(&games).Error; err != nil {
		return err
	}

	log.Println("Creating meal templates and menu...")
	templates := []domain.MealTemplate{
		{Name: "Míchaná vajíčka", MealType: domain.MealBreakfast},
		{Name: "Svíčková", MealType: domain.MealLunch, Description: "s knedlíkem"},
		{Name: "Pizza", MealType: domain.MealDinner},
	}
	if err := tx.Create(&templates).Error; err != nil {
		return err
	}
	for day := 0; day < 3; day++ {
		for _, t := range templates {
			templateID := t.ID
			item := domain.MenuItem{
				SessionID:   sess.ID,
				Date:        start.AddDate(0, 0, day),
				MealType:    t.MealType,
				Title:       t.Name,
				Description: t.Description,
				TemplateID:  &templateID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("Demo session created: slug=%s id=%s", sess.Slug, sess.ID)
	return nil
}

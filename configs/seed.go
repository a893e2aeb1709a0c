package configs

import (
	"errors"
	"fmt"
	"os"
	"time"

	"restx/entity"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedLookups fills the status and method lookup tables.
func SeedLookups(db *gorm.DB) error {
	for _, name := range []string{
		entity.OrderStatusNew, entity.OrderStatusPreparing, entity.OrderStatusServed,
		entity.OrderStatusCompleted, entity.OrderStatusCancelled,
	} {
		if err := db.FirstOrCreate(&entity.OrderStatus{}, entity.OrderStatus{StatusName: name}).Error; err != nil {
			return err
		}
	}
	for _, name := range []string{
		entity.TableStatusAvailable, entity.TableStatusOccupied, entity.TableStatusReserved, entity.TableStatusCleaning,
	} {
		if err := db.FirstOrCreate(&entity.TableStatus{}, entity.TableStatus{Name: name}).Error; err != nil {
			return err
		}
	}
	for _, name := range []string{"Cash", "Card", "Transfer"} {
		if err := db.FirstOrCreate(&entity.PaymentMethod{}, entity.PaymentMethod{MethodName: name}).Error; err != nil {
			return err
		}
	}
	logrus.Info("lookup tables seeded")
	return nil
}

// SeedOwner creates the first owner account from OWNER_USERNAME / OWNER_PASSWORD.
func SeedOwner(db *gorm.DB, cfg *Config) error {
	if cfg.OwnerUsername == "" || cfg.OwnerPassword == "" {
		logrus.Warn("skip seeding owner: missing OWNER_USERNAME/OWNER_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.Account{}).Where("username = ?", cfg.OwnerUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.WithField("username", cfg.OwnerUsername).Info("owner already exists")
		return nil
	}

	_, err := createOwner(db, seedOwner{Name: cfg.OwnerName, Username: cfg.OwnerUsername, Password: cfg.OwnerPassword})
	return err
}

type seedFile struct {
	Owners []seedOwner `yaml:"owners"`
}

type seedOwner struct {
	Name        string           `yaml:"name"`
	Address     string           `yaml:"address"`
	Username    string           `yaml:"username"`
	Password    string           `yaml:"password"`
	Tables      []int            `yaml:"tables"`
	Categories  []seedCategory   `yaml:"categories"`
	Staff       []seedStaff      `yaml:"staff"`
	Ingredients []seedIngredient `yaml:"ingredients"`
}

type seedCategory struct {
	Name   string     `yaml:"name"`
	Dishes []seedDish `yaml:"dishes"`
}

type seedDish struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	ImageURL    string `yaml:"imageUrl"`
}

type seedIngredient struct {
	Name    string `yaml:"name"`
	Unit    string `yaml:"unit"`
	Imports []struct {
		Quantity  string `yaml:"quantity"`
		TotalCost string `yaml:"totalCost"`
		DaysAgo   int    `yaml:"daysAgo"`
	} `yaml:"imports"`
}

type seedStaff struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SeedFromFile loads demo restaurants from a YAML file. Owners whose username
// already exists are skipped.
func SeedFromFile(db *gorm.DB, path, publicBaseURL string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	for _, so := range f.Owners {
		var count int64
		if err := db.Model(&entity.Account{}).Where("username = ?", so.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Transaction(func(tx *gorm.DB) error {
			return seedRestaurant(tx, so, publicBaseURL)
		}); err != nil {
			return fmt.Errorf("seed owner %q: %w", so.Username, err)
		}
		logrus.WithField("owner", so.Name).Info("demo restaurant seeded")
	}
	return nil
}

func createOwner(tx *gorm.DB, so seedOwner) (*entity.Owner, error) {
	if so.Username == "" || so.Password == "" {
		return nil, errors.New("owner username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(so.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	owner := entity.Owner{Name: so.Name, Address: so.Address, IsActive: true}
	owner.CreatedBy = "seed"
	if err := tx.Create(&owner).Error; err != nil {
		return nil, err
	}
	acc := entity.Account{Username: so.Username, Password: string(hash), Role: entity.RoleOwner, OwnerID: &owner.ID}
	if err := tx.Create(&acc).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func seedRestaurant(tx *gorm.DB, so seedOwner, publicBaseURL string) error {
	owner, err := createOwner(tx, so)
	if err != nil {
		return err
	}

	var available entity.TableStatus
	if err := tx.Where("name = ?", entity.TableStatusAvailable).First(&available).Error; err != nil {
		return err
	}
	for _, n := range so.Tables {
		t := entity.Table{OwnerID: owner.ID, TableNumber: n, TableStatusID: available.ID, IsActive: true}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		t.QRCode = fmt.Sprintf("%s/home/%s/%d", publicBaseURL, owner.ID, t.ID)
		if err := tx.Model(&t).Update("qr_code", t.QRCode).Error; err != nil {
			return err
		}
	}

	for _, sc := range so.Categories {
		var cat entity.Category
		if err := tx.Where(entity.Category{Name: sc.Name}).FirstOrCreate(&cat).Error; err != nil {
			return err
		}
		for _, sd := range sc.Dishes {
			price, err := decimal.NewFromString(sd.Price)
			if err != nil {
				return fmt.Errorf("dish %q price: %w", sd.Name, err)
			}
			d := entity.Dish{
				OwnerID: owner.ID, CategoryID: cat.ID, Name: sd.Name, Description: sd.Description,
				Price: price, ImageURL: sd.ImageURL, IsActive: true,
			}
			if err := tx.Create(&d).Error; err != nil {
				return err
			}
		}
	}

	for _, ss := range so.Staff {
		hash, err := bcrypt.GenerateFromPassword([]byte(ss.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		st := entity.Staff{OwnerID: owner.ID, Name: ss.Name, Email: ss.Email, Phone: ss.Phone, IsActive: true}
		if err := tx.Create(&st).Error; err != nil {
			return err
		}
		acc := entity.Account{Username: ss.Username, Password: string(hash), Role: entity.RoleStaff, OwnerID: &owner.ID, StaffID: &st.ID}
		if err := tx.Create(&acc).Error; err != nil {
			return err
		}
	}

	for _, si := range so.Ingredients {
		ing := entity.Ingredient{OwnerID: owner.ID, Name: si.Name, Unit: si.Unit}
		if err := tx.Create(&ing).Error; err != nil {
			return err
		}
		for _, im := range si.Imports {
			qty, _ := decimal.NewFromString(im.Quantity)
			cost, err := decimal.NewFromString(im.TotalCost)
			if err != nil {
				return fmt.Errorf("ingredient %q cost: %w", si.Name, err)
			}
			row := entity.IngredientImport{
				IngredientID: ing.ID, Quantity: qty, TotalCost: cost,
				Time: time.Now().AddDate(0, 0, -im.DaysAgo),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Record is one enriched identity/location/vehicle bundle keyed by IP
// address and phone number. Rows are written only by the bulk importer;
// the API never updates or deletes them.
type Record struct {
	bun.BaseModel `bun:"table:ipdata,alias:d"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	CreatedDate time.Time `bun:"created_date,nullzero" json:"created_date"`
	IP          string    `bun:"ip" json:"ip"`
	UserAgent   string    `bun:"user_agent" json:"user_agent"`

	// Identity
	FirstName string `bun:"first_name" json:"first_name"`
	LastName  string `bun:"last_name" json:"last_name"`
	Email     string `bun:"email" json:"email"`
	HomePhone string `bun:"home_phone" json:"home_phone"`
	CellPhone string `bun:"cell_phone" json:"cell_phone"`

	// Location
	Address1    string  `bun:"address1" json:"address1"`
	Address2    string  `bun:"address2" json:"address2"`
	City        string  `bun:"city" json:"city"`
	State       string  `bun:"state" json:"state"`
	ZipCode     string  `bun:"zip_code" json:"zip_code"`
	Zip4        int     `bun:"zip_4" json:"zip_4"`
	CountryName string  `bun:"country_name" json:"country_name"`
	CountryCode string  `bun:"country_code" json:"country_code"`
	CountryCd3  string  `bun:"country_code3" json:"country_code3"`
	TimeZone    string  `bun:"time_zone" json:"time_zone"`
	Latitude    float64 `bun:"latitude" json:"latitude"`
	Longitude   float64 `bun:"longitude" json:"longitude"`
	MetroCode   string  `bun:"metro_code" json:"metro_code"`
	DMACode     string  `bun:"dma_code" json:"dma_code"`
	AreaCode    string  `bun:"area_code" json:"area_code"`
	GeoCity     string  `bun:"geo_city" json:"geo_city"`
	PostalCode  string  `bun:"postal_code" json:"postal_code"`
	Region      string  `bun:"region" json:"region"`
	RegionName  string  `bun:"region_name" json:"region_name"`

	// Vehicle
	CarYear          int    `bun:"car_year,default:0" json:"car_year"`
	CarMake          string `bun:"car_make" json:"car_make"`
	CarModel         string `bun:"car_model" json:"car_model"`
	PPMType          string `bun:"ppm_type" json:"ppm_type"`
	PPMIndicator     string `bun:"ppm_indicator" json:"ppm_indicator"`
	PPMSegment       string `bun:"ppm_segment" json:"ppm_segment"`
	AutoTransDate    string `bun:"auto_trans_date" json:"auto_trans_date"`
	AutoPurchaseType string `bun:"auto_purchase_type" json:"auto_purchase_type"`

	// Demographic
	BirthYear       int    `bun:"birth_year,default:0" json:"birth_year"`
	CreditRange     string `bun:"credit_range" json:"credit_range"`
	IncomeRange     string `bun:"income_range" json:"income_range"`
	HomeOwnerRenter string `bun:"home_owner_renter" json:"home_owner_renter"`

	// Bookkeeping
	LastSeen  string `bun:"last_seen" json:"last_seen"`
	Processed bool   `bun:"processed,default:false" json:"-"`
	Validated bool   `bun:"validated,default:false" json:"-"`
}

var _ bun.BeforeInsertHook = (*Record)(nil)

func (r *Record) BeforeInsert(ctx context.Context, query *bun.InsertQuery) error {
	if r.CreatedDate.IsZero() {
		r.CreatedDate = time.Now()
	}
	return nil
}

// PersonName joins first and last name when both are present.
func (r *Record) PersonName() string {
	if r.FirstName != "" && r.LastName != "" {
		return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
	}
	return ""
}

// Location formats the stored street address as a single line.
func (r *Record) Location() string {
	if r.Address1 == "" {
		return ""
	}
	parts := []string{r.Address1}
	if r.Address2 != "" {
		parts = append(parts, r.Address2)
	}
	parts = append(parts, r.City, r.State, r.ZipCode)
	return strings.Join(parts, " ")
}

// AutoSummary formats the vehicle data when year and model are known.
func (r *Record) AutoSummary() string {
	if r.CarYear != 0 && r.CarModel != "" {
		return fmt.Sprintf("%d %s %s", r.CarYear, r.CarMake, r.CarModel)
	}
	return ""
}

// PersonSection is the identity/demographic block of a lookup response.
type PersonSection struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Address1        string `json:"address1"`
	Address2        string `json:"address2"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zip_code"`
	HomePhone       string `json:"home_phone"`
	CellPhone       string `json:"cell_phone"`
	BirthYear       int    `json:"birth_year"`
	CreditRange     string `json:"credit_range"`
	IncomeRange     string `json:"income_range"`
	HomeOwnerRenter string `json:"home_owner_renter"`
}

// GeoSection is the stored geography block of a lookup response.
type GeoSection struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimeZone    string  `json:"time_zone"`
	MetroCode   string  `json:"metro_code"`
	CountryName string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
	CountryCd3  string  `json:"country_code3"`
	DMACode     string  `json:"dma_code"`
	AreaCode    string  `json:"area_code"`
	Region      string  `json:"region"`
	RegionName  string  `json:"region_name"`
}

// AutoSection is the vehicle block of a lookup response.
type AutoSection struct {
	CarYear          int    `json:"car_year"`
	CarMake          string `json:"car_make"`
	CarModel         string `json:"car_model"`
	PPMType          string `json:"ppm_type"`
	PPMIndicator     string `json:"ppm_indicator"`
	PPMSegment       string `json:"ppm_segment"`
	AutoTransDate    string `json:"auto_trans_date"`
	AutoPurchaseType string `json:"auto_purchase_type"`
}

func (r *Record) Person() PersonSection {
	return PersonSection{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Address1:        r.Address1,
		Address2:        r.Address2,
		City:            r.City,
		State:           strings.ToUpper(r.State),
		ZipCode:         r.ZipCode,
		HomePhone:       r.HomePhone,
		CellPhone:       r.CellPhone,
		BirthYear:       r.BirthYear,
		CreditRange:     r.CreditRange,
		IncomeRange:     r.IncomeRange,
		HomeOwnerRenter: r.HomeOwnerRenter,
	}
}

func (r *Record) Geo() GeoSection {
	return GeoSection{
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		TimeZone:    r.TimeZone,
		MetroCode:   r.MetroCode,
		CountryName: r.CountryName,
		CountryCode: r.CountryCode,
		CountryCd3:  r.CountryCd3,
		DMACode:     r.DMACode,
		AreaCode:    r.AreaCode,
		Region:      r.Region,
		RegionName:  r.RegionName,
	}
}

func (r *Record) Auto() AutoSection {
	return AutoSection{
		CarYear:          r.CarYear,
		CarMake:          r.CarMake,
		CarModel:         r.CarModel,
		PPMType:          r.PPMType,
		PPMIndicator:     r.PPMIndicator,
		PPMSegment:       r.PPMSegment,
		AutoTransDate:    r.AutoTransDate,
		AutoPurchaseType: r.AutoPurchaseType,
	}
}

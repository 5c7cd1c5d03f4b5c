package repository

import (
	"time"

	"github.com/dkravets/renthub-system/internal/model"
)

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(value string) *time.Time {
	t := mustDate(value)
	return &t
}

func seedListings() []model.Listing {
	return []model.Listing{
		{
			ID:         "1",
			Title:      "Modern Downtown Loft",
			Price:      2500,
			ViewingFee: 75,
			Address:    "123 Main St, Downtown",
			Sqft:       1200,
			Bedrooms:   2,
			Bathrooms:  2,
			Images: []string{
				"https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg",
				"https://images.pexels.com/photos/1648768/pexels-photo-1648768.jpeg",
			},
			Status:    model.ListingStatusOccupied,
			Featured:  true,
			CreatedAt: mustDate("2023-06-12"),
		},
		{
			ID:         "2",
			Title:      "Cozy Studio Apartment",
			Price:      1800,
			ViewingFee: 50,
			Address:    "456 Oak Ave, Midtown",
			Sqft:       600,
			Bedrooms:   1,
			Bathrooms:  1,
			Images: []string{
				"https://images.pexels.com/photos/1571463/pexels-photo-1571463.jpeg",
			},
			Status:    model.ListingStatusAvailable,
			CreatedAt: mustDate("2023-07-03"),
		},
		{
			ID:         "3",
			Title:      "Luxury Penthouse Suite",
			Price:      4200,
			ViewingFee: 100,
			Address:    "789 Park Blvd, Uptown",
			Sqft:       2400,
			Bedrooms:   3,
			Bathrooms:  3,
			Images: []string{
				"https://images.pexels.com/photos/1571467/pexels-photo-1571467.jpeg",
			},
			Status:    model.ListingStatusAvailable,
			Featured:  true,
			CreatedAt: mustDate("2023-09-21"),
		},
		{
			ID:         "4",
			Title:      "Family-Friendly Townhouse",
			Price:      3200,
			ViewingFee: 80,
			Address:    "321 Elm St, Suburbs",
			Sqft:       1800,
			Bedrooms:   3,
			Bathrooms:  2,
			Images: []string{
				"https://images.pexels.com/photos/1571470/pexels-photo-1571470.jpeg",
			},
			Status:    model.ListingStatusAvailable,
			CreatedAt: mustDate("2023-11-05"),
		},
	}
}

func seedTenants() []model.Tenant {
	return []model.Tenant{
		{
			ID:         "t1",
			Name:       "John Doe",
			Email:      "john.doe@example.com",
			Phone:      "+1 (555) 123-4567",
			Apartment:  "Modern Downtown Loft",
			RentAmount: 2500,
			Status:     model.TenantStatusCurrent,
			LeaseStart: mustDate("2023-08-01"),
			LeaseEnd:   mustDate("2024-08-01"),
		},
		{
			ID:         "t2",
			Name:       "Sarah Johnson",
			Email:      "sarah.johnson@example.com",
			Phone:      "+1 (555) 234-5678",
			Apartment:  "Cozy Studio Apartment",
			RentAmount: 1800,
			Status:     model.TenantStatusCurrent,
			LeaseStart: mustDate("2023-09-01"),
			LeaseEnd:   mustDate("2024-09-01"),
		},
		{
			ID:         "t3",
			Name:       "Mike Wilson",
			Email:      "mike.wilson@example.com",
			Phone:      "+1 (555) 345-6789",
			Apartment:  "Luxury Penthouse Suite",
			RentAmount: 4200,
			Status:     model.TenantStatusOverdue,
			LeaseStart: mustDate("2023-07-01"),
			LeaseEnd:   mustDate("2024-07-01"),
		},
	}
}

func seedPayments() []model.PaymentRecord {
	return []model.PaymentRecord{
		{
			ID:         "PAY-001",
			TenantName: "John Doe",
			Apartment:  "Modern Downtown Loft",
			Type:       model.PaymentTypeRent,
			Amount:     2500,
			Date:       datePtr("2024-01-15"),
			Status:     model.PaymentStatusCompleted,
			Method:     model.MethodCard,
			DueDate:    datePtr("2024-01-01"),
		},
		{
			ID:         "PAY-002",
			TenantName: "Sarah Johnson",
			Apartment:  "Cozy Studio Apartment",
			Type:       model.PaymentTypeRent,
			Amount:     1800,
			Date:       datePtr("2024-01-10"),
			Status:     model.PaymentStatusCompleted,
			Method:     model.MethodPayPal,
			DueDate:    datePtr("2024-01-05"),
		},
		{
			ID:         "PAY-003",
			TenantName: "Emma Davis",
			Apartment:  "Modern Downtown Loft",
			Type:       model.PaymentTypeViewing,
			Amount:     75,
			Date:       datePtr("2024-01-25"),
			Status:     model.PaymentStatusCompleted,
			Method:     model.MethodCard,
		},
		{
			ID:         "PAY-004",
			TenantName: "Mike Wilson",
			Apartment:  "Luxury Penthouse Suite",
			Type:       model.PaymentTypeRent,
			Amount:     4200,
			Status:     model.PaymentStatusPending,
			DueDate:    datePtr("2024-01-28"),
		},
		{
			ID:         "PAY-005",
			TenantName: "Alex Chen",
			Apartment:  "Luxury Penthouse Suite",
			Type:       model.PaymentTypeViewing,
			Amount:     100,
			Date:       datePtr("2024-01-24"),
			Status:     model.PaymentStatusCompleted,
			Method:     model.MethodPayPal,
		},
	}
}

func seedMonths() []model.MonthStat {
	return []model.MonthStat{
		{Month: "Jan", Revenue: 18500, Occupancy: 85},
		{Month: "Feb", Revenue: 22300, Occupancy: 92},
		{Month: "Mar", Revenue: 25100, Occupancy: 88},
		{Month: "Apr", Revenue: 28400, Occupancy: 95},
		{Month: "May", Revenue: 31200, Occupancy: 90},
		{Month: "Jun", Revenue: 29800, Occupancy: 87},
	}
}

func seedActivities() []model.Activity {
	return []model.Activity{
		{Kind: "payment", Message: "Rent payment received from John Doe", At: mustDate("2024-01-15")},
		{Kind: "application", Message: "New rental application for Cozy Studio Apartment", At: mustDate("2024-01-18")},
		{Kind: "maintenance", Message: "Maintenance request resolved at Modern Downtown Loft", At: mustDate("2024-01-22")},
		{Kind: "payment", Message: "Viewing fee received from Emma Davis", At: mustDate("2024-01-25")},
	}
}

package fixture

import "shopfront/internal/domain"

// SampleProducts returns the demo catalog
func SampleProducts() []domain.Product {
	access := &domain.Category{Name: "Access Control"}
	attendance := &domain.Category{Name: "Time & Attendance"}
	return []domain.Product{
		{
			ID: "p-100", Title: "FaceGate X2 Face Recognition Terminal", Slug: "facegate-x2",
			Images:   []string{"/img/facegate-x2.png", "/img/facegate-x2-side.png"},
			Summary:  "Touchless face recognition with mask detection for up to 50,000 faces.",
			Category: &domain.Category{Name: "Face Recognition", Parent: access},
		},
		{
			ID: "p-101", Title: "PalmSecure P7 Palm Vein Reader", Slug: "palmsecure-p7",
			Images:   []string{"/img/palmsecure-p7.png"},
			Summary:  "Contactless palm vein authentication for high-security doors.",
			Category: &domain.Category{Name: "Palm Vein", Parent: access},
		},
		{
			ID: "p-102", Title: "FP-520 <b>Fingerprint</b> Reader", Slug: "fp-520",
			Images:   []string{"/img/fp-520.png"},
			Summary:  "Optical fingerprint reader with live finger detection.",
			Category: &domain.Category{Name: "Fingerprint", Parent: access},
		},
		{
			ID: "p-103", Title: "TimeClock T9 Attendance Terminal", Slug: "timeclock-t9",
			Images:   []string{"/img/timeclock-t9.png"},
			Summary:  "Fingerprint, card and PIN attendance with cloud sync.",
			Category: &domain.Category{Name: "Terminals", Parent: attendance},
		},
		{
			ID: "p-104", Title: "CardLink RFID Reader", Slug: "cardlink-rfid",
			Images:   nil,
			Summary:  "125kHz and 13.56MHz card reader with Wiegand output.",
			Category: &domain.Category{Name: "Card Readers", Parent: access},
		},
		{
			ID: "p-105", Title: "Visitor Kiosk VK-1", Slug: "visitor-kiosk-vk1",
			Images:   []string{"/img/vk1.png"},
			Summary:  "Self-service visitor registration with ID scanning.",
			Category: &domain.Category{Name: "Visitor Management"},
		},
		{
			ID: "p-106", Title: "Fingerprint Door Lock L3", Slug: "door-lock-l3",
			Images:   []string{"/img/l3.png"},
			Summary:  "Standalone smart lock with fingerprint and keypad.",
			Category: &domain.Category{Name: "Fingerprint", Parent: access},
		},
		{
			ID: "p-107", Title: "Attendance Cloud Suite", Slug: "attendance-cloud",
			Images:   []string{},
			Summary:  "Hosted attendance, shift and leave management.",
			Category: &domain.Category{Name: "Software", Parent: attendance},
		},
	}
}

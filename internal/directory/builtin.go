package directory

import "github.com/Nixie-Tech-LLC/darshan/internal/model"

// BuiltinTemples is the bundled dataset, in display order.
func BuiltinTemples() []model.TempleRecord {
	return []model.TempleRecord{
		{
			ID:          "tirupati-balaji",
			Name:        "Tirumala Venkateswara Temple",
			Location:    "Tirupati, Andhra Pradesh",
			Icon:        "🕉️",
			CrowdStatus: model.CrowdHigh,
			WaitTime:    "4-6 hours",
			OpenTime:    "2:30 AM",
			CloseTime:   "1:00 AM (Next Day)",
			Description: "One of the most sacred temples dedicated to Lord Venkateswara, attracting millions of devotees annually.",
			SpecialTimings: []model.SpecialTiming{
				{Name: "Suprabhatam", Time: "3:00 AM - 3:30 AM"},
				{Name: "Thomala Seva", Time: "4:45 AM - 5:30 AM"},
				{Name: "Sahasra Deepalankara Seva", Time: "7:00 PM - 7:30 PM"},
				{Name: "Ekanta Seva", Time: "12:30 AM - 1:00 AM"},
			},
			Alerts:      []string{"Heavy crowd expected during weekend", "Online booking recommended"},
			LastUpdated: "2 mins ago",
		},
		{
			ID:          "golden-temple",
			Name:        "Harmandir Sahib (Golden Temple)",
			Location:    "Amritsar, Punjab",
			Icon:        "🏛️",
			CrowdStatus: model.CrowdModerate,
			WaitTime:    "30-45 minutes",
			OpenTime:    "3:00 AM",
			CloseTime:   "12:00 AM",
			Description: "The holiest Gurdwara of Sikhism, known for its golden dome and spiritual serenity.",
			SpecialTimings: []model.SpecialTiming{
				{Name: "Morning Prayer", Time: "3:00 AM - 6:00 AM"},
				{Name: "Rehras Sahib", Time: "6:00 PM - 7:00 PM"},
				{Name: "Kirtan Darbar", Time: "9:00 PM - 10:00 PM"},
			},
			Alerts:      []string{"Free langar available 24/7", "Head covering mandatory"},
			LastUpdated: "5 mins ago",
		},
		{
			ID:          "jagannath-puri",
			Name:        "Jagannath Temple",
			Location:    "Puri, Odisha",
			Icon:        "🛕",
			CrowdStatus: model.CrowdLow,
			WaitTime:    "15-30 minutes",
			OpenTime:    "5:00 AM",
			CloseTime:   "12:00 AM",
			Description: "Ancient temple dedicated to Lord Jagannath, famous for the annual Rath Yatra festival.",
			SpecialTimings: []model.SpecialTiming{
				{Name: "Mangal Arti", Time: "5:00 AM - 6:00 AM"},
				{Name: "Bhog Mandap", Time: "12:30 PM - 1:00 PM"},
				{Name: "Sandhya Arti", Time: "7:00 PM - 8:00 PM"},
			},
			Alerts:      []string{"Photography not allowed inside", "Traditional attire preferred"},
			LastUpdated: "1 min ago",
		},
		{
			ID:          "kedarnath",
			Name:        "Kedarnath Temple",
			Location:    "Kedarnath, Uttarakhand",
			Icon:        "⛰️",
			CrowdStatus: model.CrowdModerate,
			WaitTime:    "1-2 hours",
			OpenTime:    "4:00 AM",
			CloseTime:   "7:00 PM",
			Description: "One of the twelve Jyotirlingas, situated at an altitude of 3,583m in the Himalayas.",
			SpecialTimings: []model.SpecialTiming{
				{Name: "Morning Arti", Time: "4:00 AM - 5:00 AM"},
				{Name: "Abhishek", Time: "6:00 AM - 7:00 AM"},
				{Name: "Evening Arti", Time: "6:00 PM - 7:00 PM"},
			},
			Alerts:      []string{"Temple closed during winter months", "Weather dependent timings"},
			LastUpdated: "10 mins ago",
		},
		{
			ID:          "vaishno-devi",
			Name:        "Vaishno Devi Temple",
			Location:    "Katra, Jammu & Kashmir",
			Icon:        "🏔️",
			CrowdStatus: model.CrowdHigh,
			WaitTime:    "3-4 hours",
			OpenTime:    "5:00 AM",
			CloseTime:   "12:00 AM",
			Description: "Sacred cave temple dedicated to Mata Vaishno Devi, requiring a 12km trek to reach.",
			SpecialTimings: []model.SpecialTiming{
				{Name: "Morning Arti", Time: "5:30 AM - 6:30 AM"},
				{Name: "Noon Arti", Time: "12:00 PM - 1:00 PM"},
				{Name: "Evening Arti", Time: "7:00 PM - 8:00 PM"},
			},
			Alerts:      []string{"Helicopter services available", "Online registration mandatory"},
			LastUpdated: "3 mins ago",
		},
		{
			ID:          "somnath",
			Name:        "Somnath Temple",
			Location:    "Somnath, Gujarat",
			Icon:        "🌊",
			CrowdStatus: model.CrowdLow,
			WaitTime:    "20-30 minutes",
			OpenTime:    "6:00 AM",
			CloseTime:   "9:00 PM",
			Description: "First of the twelve Jyotirlinga shrines, located on the shore of the Arabian Sea.",
			SpecialTimings: []model.SpecialTiming{
				{Name: "Morning Arti", Time: "7:00 AM - 8:00 AM"},
				{Name: "Madhyan Arti", Time: "12:00 PM - 12:30 PM"},
				{Name: "Sandhya Arti", Time: "7:00 PM - 7:30 PM"},
			},
			Alerts:      []string{"Sound and light show at 8 PM", "Beach view available"},
			LastUpdated: "7 mins ago",
		},
		{
			ID:          "meenakshi-temple",
			Name:        "Meenakshi Amman Temple",
			Location:    "Madurai, Tamil Nadu",
			Icon:        "🌺",
			CrowdStatus: model.CrowdModerate,
			WaitTime:    "45 minutes - 1 hour",
			OpenTime:    "5:00 AM",
			CloseTime:   "12:30 AM",
			Description: "Historic Tamil temple dedicated to Meenakshi Devi and Lord Sundareswarar.",
			SpecialTimings: []model.SpecialTiming{
				{Name: "Kalasandhi", Time: "6:30 AM - 7:15 AM"},
				{Name: "Uchikalam", Time: "10:00 AM - 10:45 AM"},
				{Name: "Sayarakshai", Time: "5:00 PM - 5:45 PM"},
			},
			Alerts:      []string{"Colorful Gopuram architecture", "Traditional South Indian customs"},
			LastUpdated: "4 mins ago",
		},
		{
			ID:          "siddhivinayak",
			Name:        "Siddhivinayak Temple",
			Location:    "Mumbai, Maharashtra",
			Icon:        "🐘",
			CrowdStatus: model.CrowdHigh,
			WaitTime:    "2-3 hours",
			OpenTime:    "5:30 AM",
			CloseTime:   "10:00 PM",
			Description: "Renowned Ganesha temple in Mumbai, attracting devotees from across the world.",
			SpecialTimings: []model.SpecialTiming{
				{Name: "Morning Arti", Time: "6:00 AM - 6:30 AM"},
				{Name: "Madhyan Arti", Time: "12:00 PM - 12:30 PM"},
				{Name: "Sandhya Arti", Time: "6:30 PM - 7:00 PM"},
			},
			Alerts:      []string{"Tuesday rush expected", "Online darshan available"},
			LastUpdated: "1 min ago",
		},
	}
}

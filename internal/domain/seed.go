package domain

// SeedData is the bootstrap dataset loaded into an empty store. The caller
// injects it explicitly; nothing is seeded implicitly.
type SeedData struct {
	Categories []Category
	Products   []Product
	Orders     []Order
	Zones      []DeliveryZone
	AreaTiers  AreaTiers
}

// DefaultSeedData returns the sample dataset shipped with the storefront.
func DefaultSeedData() SeedData {
	return SeedData{
		Categories: []Category{
			{ID: "1", Name: "إلكترونيات"},
			{ID: "2", Name: "أزياء"},
			{ID: "3", Name: "عطور"},
		},
		Products: []Product{
			{ID: "1", Name: "هاتف ذكي متطور", Description: "هاتف ذكي بمواصفات عالية وبطارية طويلة العمر.", Price: 1299.99, CategoryID: "1"},
			{ID: "2", Name: "ساعة ذكية فاخرة", Description: "ساعة ذكية بتصميم أنيق ومقاومة للماء.", Price: 299.99, CategoryID: "1"},
			{ID: "3", Name: "سماعات لاسلكية", Description: "سماعات لاسلكية مع إلغاء الضوضاء النشط.", Price: 159.99, CategoryID: "1"},
			{ID: "4", Name: "حقيبة جلدية أنيقة", Description: "حقيبة جلدية فاخرة مصنوعة يدويًا.", Price: 199.99, CategoryID: "2"},
			{ID: "5", Name: "نظارة شمسية كلاسيكية", Description: "نظارة شمسية بعدسات مضادة للأشعة فوق البنفسجية.", Price: 129.99, CategoryID: "2"},
			{ID: "6", Name: "عطر فاخر للرجال", Description: "عطر برائحة خشبية تدوم طويلًا.", Price: 89.99, CategoryID: "3"},
		},
		Orders: []Order{
			{
				ID:           "1",
				CustomerName: "أحمد محمد",
				City:         "طرابلس",
				Address:      "شارع النصر، حي الأندلس",
				Phone:        "0912345678",
				Lines: []OrderLine{
					{ProductID: "1", Name: "هاتف ذكي متطور", Price: 1299.99, Quantity: 1},
					{ProductID: "3", Name: "سماعات لاسلكية", Price: 159.99, Quantity: 2},
				},
				TotalPrice:   1619.97,
				Status:       StatusDelivered,
				Date:         "2023-05-15",
			},
			{
				ID:           "2",
				CustomerName: "فاطمة علي",
				City:         "بنغازي",
				Address:      "شارع عمر المختار، وسط المدينة",
				Phone:        "0923456789",
				Lines:        []OrderLine{{ProductID: "2", Name: "ساعة ذكية فاخرة", Price: 299.99, Quantity: 1}},
				TotalPrice:   299.99,
				Status:       StatusProcessing,
				Date:         "2023-05-20",
			},
		},
		Zones: []DeliveryZone{
			{ID: "dz_tripoli", Name: "طرابلس", Cities: []string{"طرابلس"}, Price: 10},
			{ID: "dz_benghazi", Name: "بنغازي", Cities: []string{"بنغازي"}, Price: 15},
		},
		AreaTiers: DefaultAreaTiers(),
	}
}

// DefaultAreaTiers returns the capital's sub-area pricing buckets.
func DefaultAreaTiers() AreaTiers {
	return AreaTiers{
		Central: []string{
			"وسط المدينة",
			"سوق الجمعة",
			"باب البحر",
			"المدينة القديمة",
			"ظهرة الشوك",
		},
		CentralPrice: 10,
		Near: []string{
			"عين زارة",
			"تاجوراء",
			"جنزور القريبة",
			"قرجي",
			"قرقارش",
			"سيدي المصري",
			"الهضبة",
			"أبو سليم",
		},
		NearPrice: 15,
		Far: []string{
			"السراج",
			"جنزور البعيدة",
			"سوق السبت",
			"الكريمية",
			"عين زارة الجديدة",
			"الساعدية",
		},
		FarPrice:     20,
		DefaultPrice: 20,
	}
}

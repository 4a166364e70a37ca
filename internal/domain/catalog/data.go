package catalog

var zones = []Zone{
	{
		ID:          "strength",
		Title:       "Strength Zone",
		Description: "Our strength zone features free weights, benches, squat racks, and plate-loaded machines for serious strength training.",
		Features:    []string{"Olympic lifting platforms", "Power racks and cages", "Dumbbells up to 50kg"},
	},
	{
		ID:          "cardio",
		Title:       "Cardio Zone",
		Description: "Our cardio section features the latest treadmills, ellipticals, bikes, and rowers with integrated entertainment.",
		Features:    []string{"Smart treadmills with incline", "Stair masters and climbers", "Assault bikes and rowers"},
	},
	{
		ID:          "functional",
		Title:       "Functional Zone",
		Description: "Our functional training area is equipped with kettlebells, battle ropes, medicine balls, and open space.",
		Features:    []string{"TRX suspension systems", "Plyo boxes and agility tools", "Turf strip for functional movement"},
	},
}

var gymClasses = []GymClass{
	{
		ID:              "hiit-extreme",
		Title:           "HIIT Extreme",
		Subtitle:        "High Intensity Interval Training",
		Description:     "Push your limits with our high-intensity interval training class designed to boost metabolism and burn fat efficiently.",
		Categories:      []string{"Cardio", "Strength"},
		DurationMinutes: 45,
		Schedule:        []string{"Mon", "Wed", "Fri"},
	},
	{
		ID:              "power-hour",
		Title:           "Power Hour",
		Subtitle:        "Strength & Conditioning",
		Description:     "Develop functional strength and muscular endurance with our comprehensive strength and conditioning program.",
		Categories:      []string{"Strength", "Endurance"},
		DurationMinutes: 60,
		Schedule:        []string{"Tue", "Thu", "Sat"},
	},
}

var accessMethods = []AccessMethod{
	{ID: "nfc", Title: "NFC", Description: "Hold your device near the NFC tag"},
	{ID: "qr", Title: "QR", Description: "Scan this QR code at the entrance"},
	{ID: "pin", Title: "PIN Code", Description: "Enter this PIN at the entrance"},
}

var studioTypes = []StudioType{
	{
		ID:          "yoga",
		Name:        "Yoga",
		Description: "Find balance, flexibility, and inner peace through our variety of yoga classes designed for all levels.",
		Benefits: []string{
			"Improved flexibility and balance",
			"Reduced stress and anxiety",
			"Enhanced mind-body connection",
			"Better posture and alignment",
		},
		Classes: []StudioClass{
			{Name: "Vinyasa Flow", DurationMinutes: 60, Level: "All Levels", Description: "Dynamic flowing sequences that synchronize breath with movement."},
			{Name: "Hatha Yoga", DurationMinutes: 75, Level: "Beginner", Description: "Traditional approach focusing on proper alignment and breathing techniques."},
			{Name: "Power Yoga", DurationMinutes: 60, Level: "Intermediate", Description: "Vigorous, fitness-based approach to vinyasa-style yoga."},
		},
		Pricing: StudioPricing{DropIn: 1800, TenClass: 16000, Monthly: 12000},
	},
	{
		ID:          "pilates",
		Name:        "Pilates",
		Description: "Strengthen your core, improve posture, and enhance body awareness with our specialized Pilates programs.",
		Benefits: []string{
			"Strong core and improved stability",
			"Enhanced flexibility and mobility",
			"Better posture and alignment",
			"Injury prevention and rehabilitation",
		},
		Classes: []StudioClass{
			{Name: "Mat Pilates", DurationMinutes: 55, Level: "All Levels", Description: "Classic Pilates exercises performed on a mat focusing on core strength."},
			{Name: "Reformer Pilates", DurationMinutes: 50, Level: "All Levels", Description: "Exercises performed on the Pilates reformer machine for resistance training."},
			{Name: "Pilates Fusion", DurationMinutes: 60, Level: "Intermediate", Description: "Combines traditional Pilates with elements of yoga and functional training."},
		},
		Pricing: StudioPricing{DropIn: 2200, TenClass: 20000, Monthly: 15000},
	},
	{
		ID:          "s60",
		Name:        "Group Class S60",
		Description: "High-energy, results-driven 60-minute sessions designed to transform your body through varied workout styles.",
		Benefits: []string{
			"Efficient full-body workouts",
			"Increased cardiovascular fitness",
			"Improved strength and endurance",
			"Motivating group atmosphere",
		},
		Classes: []StudioClass{
			{Name: "S60 HIIT", DurationMinutes: 60, Level: "All Levels", Description: "High-intensity interval training to maximize calorie burn and improve fitness."},
			{Name: "S60 Strength", DurationMinutes: 60, Level: "All Levels", Description: "Focused on building strength and muscle tone using various equipment."},
			{Name: "S60 Core", DurationMinutes: 60, Level: "All Levels", Description: "Targets the core muscles for improved stability, strength, and definition."},
		},
		Pricing: StudioPricing{DropIn: 2000, TenClass: 18000, Monthly: 14000},
	},
}

var studioServices = []StudioService{
	{ID: "cycling", Title: "CYCLING", Description: "HIGH-INTENSITY CARDIO WORKOUTS ON STATE-OF-THE-ART BIKES."},
	{ID: "yoga", Title: "YOGA", Description: "FIND BALANCE AND FLEXIBILITY THROUGH MINDFUL MOVEMENT AND BREATH."},
	{ID: "pilates", Title: "PILATES", Description: "STRENGTHEN YOUR CORE AND IMPROVE POSTURE WITH CONTROLLED MOVEMENTS."},
}

var studioSchedule = []ScheduleSlot{
	{Day: "Monday", Time: "07:00", Class: "Vinyasa Flow", Type: "Yoga"},
	{Day: "Monday", Time: "12:00", Class: "Mat Pilates", Type: "Pilates"},
	{Day: "Monday", Time: "18:30", Class: "S60 HIIT", Type: "S60"},
	{Day: "Wednesday", Time: "08:30", Class: "Power Yoga", Type: "Yoga"},
	{Day: "Wednesday", Time: "12:00", Class: "Reformer Pilates", Type: "Pilates"},
	{Day: "Wednesday", Time: "19:00", Class: "S60 Strength", Type: "S60"},
	{Day: "Friday", Time: "07:00", Class: "Hatha Yoga", Type: "Yoga"},
	{Day: "Friday", Time: "12:00", Class: "Pilates Fusion", Type: "Pilates"},
	{Day: "Friday", Time: "18:00", Class: "S60 Core", Type: "S60"},
}

// Gym builds the gym offerings from the static catalog
func Gym() GymOfferings {
	return GymOfferings{
		Zones:         append([]Zone(nil), zones...),
		Classes:       append([]GymClass(nil), gymClasses...),
		AccessMethods: append([]AccessMethod(nil), accessMethods...),
	}
}

// Studio builds the studio offerings from the static catalog
func Studio() StudioOfferings {
	return StudioOfferings{
		Types:    append([]StudioType(nil), studioTypes...),
		Services: append([]StudioService(nil), studioServices...),
		Schedule: append([]ScheduleSlot(nil), studioSchedule...),
	}
}

// FindStudioType looks up a studio discipline by ID
func FindStudioType(id string) (StudioType, bool) {
	for _, st := range studioTypes {
		if st.ID == id {
			return st, true
		}
	}
	return StudioType{}, false
}

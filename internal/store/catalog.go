package store

// DefaultCatalog returns the built-in activity definitions, seeded on first
// run. All rates are 1 point per 30 minutes; only default durations differ.
func DefaultCatalog() Catalog {
	return Catalog{
		CategoryEnglish: {
			{
				ID:              "eng_listening",
				Name:            "Listening",
				Description:     "Listening to English content",
				DefaultPoints:   1,
				DefaultDuration: 30,
				Category:        CategoryEnglish,
				Icon:            "🎧",
				Color:           "#10B981",
			},
			{
				ID:              "eng_reading",
				Name:            "Reading",
				Description:     "Reading English texts",
				DefaultPoints:   1,
				DefaultDuration: 30,
				Category:        CategoryEnglish,
				Icon:            "📖",
				Color:           "#10B981",
			},
			{
				ID:              "eng_grammar",
				Name:            "Grammar",
				Description:     "Studying English grammar",
				DefaultPoints:   1,
				DefaultDuration: 45,
				Category:        CategoryEnglish,
				Icon:            "📝",
				Color:           "#10B981",
			},
			{
				ID:              "eng_speaking",
				Name:            "Speaking",
				Description:     "Practicing English conversation",
				DefaultPoints:   1,
				DefaultDuration: 30,
				Category:        CategoryEnglish,
				Icon:            "🗣️",
				Color:           "#10B981",
			},
		},
		CategoryUniversity: {
			{
				ID:              "uni_exam",
				Name:            "Exam prep",
				Description:     "Preparing for exams",
				DefaultPoints:   1,
				DefaultDuration: 60,
				Category:        CategoryUniversity,
				Icon:            "📋",
				Color:           "#3B82F6",
			},
			{
				ID:              "uni_lecture",
				Name:            "Lecture",
				Description:     "Attending a university lecture",
				DefaultPoints:   1,
				DefaultDuration: 50,
				Category:        CategoryUniversity,
				Icon:            "🎓",
				Color:           "#3B82F6",
			},
			{
				ID:              "uni_review",
				Name:            "Review",
				Description:     "Reviewing course material",
				DefaultPoints:   1,
				DefaultDuration: 45,
				Category:        CategoryUniversity,
				Icon:            "📖",
				Color:           "#3B82F6",
			},
			{
				ID:              "uni_homework",
				Name:            "Homework",
				Description:     "Completing university assignments",
				DefaultPoints:   1,
				DefaultDuration: 60,
				Category:        CategoryUniversity,
				Icon:            "✏️",
				Color:           "#3B82F6",
			},
		},
		CategoryOther: {
			{
				ID:              "other_general",
				Name:            "General activity",
				Description:     "A personal or general activity",
				DefaultPoints:   1,
				DefaultDuration: 30,
				Category:        CategoryOther,
				Icon:            "⭐",
				Color:           "#F59E0B",
			},
		},
	}
}

// Definitions flattens the catalog in category display order.
func (c Catalog) Definitions() []ActivityDefinition {
	var defs []ActivityDefinition
	for _, cat := range Categories {
		defs = append(defs, c[cat]...)
	}
	return defs
}

// Find returns the definition with the given id, or false.
func (c Catalog) Find(id string) (ActivityDefinition, bool) {
	for _, defs := range c {
		for _, d := range defs {
			if d.ID == id {
				return d, true
			}
		}
	}
	return ActivityDefinition{}, false
}

package catalog

import "github.com/shelfmarkapp/shelfmark-server/internal/domain"

// DefaultBooks returns the built-in catalog used when no catalog file is
// configured. Dune is held as unavailable by the catalog itself.
func DefaultBooks() []domain.BookRecord {
	return []domain.BookRecord{
		{
			ID:            "1",
			Title:         "The Midnight Library",
			Author:        "Matt Haig",
			ISBN:          "978-0525559474",
			Category:      "Fiction",
			Available:     true,
			CoverURL:      "https://images.unsplash.com/photo-1599185186578-0ba91c2a15c0?fit=max&fm=jpg&q=80&w=1080",
			Description:   "A dazzling novel about all the choices that go into a life well lived.",
			PublishedYear: 2020,
		},
		{
			ID:            "2",
			Title:         "Atomic Habits",
			Author:        "James Clear",
			ISBN:          "978-0735211292",
			Category:      "Self-Help",
			Available:     true,
			CoverURL:      "https://images.unsplash.com/photo-1588580000645-4562a6d2c839?fit=max&fm=jpg&q=80&w=1080",
			Description:   "An easy and proven way to build good habits and break bad ones.",
			PublishedYear: 2018,
		},
		{
			ID:            "3",
			Title:         "Sapiens",
			Author:        "Yuval Noah Harari",
			ISBN:          "978-0062316097",
			Category:      "History",
			Available:     true,
			CoverURL:      "https://images.unsplash.com/photo-1472173148041-00294f0814a2?fit=max&fm=jpg&q=80&w=1080",
			Description:   "A brief history of humankind from the Stone Age to modern times.",
			PublishedYear: 2011,
		},
		{
			ID:            "4",
			Title:         "Project Hail Mary",
			Author:        "Andy Weir",
			ISBN:          "978-0593135204",
			Category:      "Science Fiction",
			Available:     true,
			CoverURL:      "https://images.unsplash.com/photo-1732304722020-be33345c00c3?fit=max&fm=jpg&q=80&w=1080",
			Description:   "A lone astronaut must save Earth from disaster in this gripping sci-fi adventure.",
			PublishedYear: 2021,
		},
		{
			ID:            "5",
			Title:         "The Silent Patient",
			Author:        "Alex Michaelides",
			ISBN:          "978-1250301697",
			Category:      "Mystery",
			Available:     true,
			CoverURL:      "https://images.unsplash.com/photo-1523712900580-a5cc2e0112ed?fit=max&fm=jpg&q=80&w=1080",
			Description:   "A gripping psychological thriller about a woman who shoots her husband.",
			PublishedYear: 2019,
		},
		{
			ID:            "6",
			Title:         "Educated",
			Author:        "Tara Westover",
			ISBN:          "978-0399590504",
			Category:      "Biography",
			Available:     true,
			CoverURL:      "https://images.unsplash.com/photo-1582739010387-0b49ea2adaf6?fit=max&fm=jpg&q=80&w=1080",
			Description:   "A memoir about a young woman who leaves her survivalist family.",
			PublishedYear: 2018,
		},
		{
			ID:            "7",
			Title:         "Dune",
			Author:        "Frank Herbert",
			ISBN:          "978-0441172719",
			Category:      "Science Fiction",
			Available:     false,
			CoverURL:      "https://images.unsplash.com/photo-1732304722020-be33345c00c3?fit=max&fm=jpg&q=80&w=1080",
			Description:   "A science fiction masterpiece set on the desert planet Arrakis.",
			PublishedYear: 1965,
		},
		{
			ID:            "8",
			Title:         "1984",
			Author:        "George Orwell",
			ISBN:          "978-0451524935",
			Category:      "Fiction",
			Available:     true,
			CoverURL:      "https://images.unsplash.com/photo-1599185186578-0ba91c2a15c0?fit=max&fm=jpg&q=80&w=1080",
			Description:   "A dystopian social science fiction novel and cautionary tale.",
			PublishedYear: 1949,
		},
	}
}

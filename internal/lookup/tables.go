package lookup

// labels maps English-facing labels to the French codes the model was
// trained on. Neighborhood entries map to their district number.
var labels = map[string]string{
	"After 1990":  "Apres 1990",
	"Before 1946": "Avant 1946",
	"1971-1990":   "1971-1990",
	"1946-1970":   "1946-1970",
	"Furnished":   "meublé",
	"Unfurnished": "non meublé",

	"Amérique":               "13",
	"Archives":               "4",
	"Arsenal":                "2",
	"Arts-et-Metiers":        "4",
	"Auteuil":                "7",
	"Batignolles":            "10",
	"Bel-Air":                "14",
	"Belleville":             "11",
	"Bercy":                  "14",
	"Bonne-Nouvelle":         "4",
	"Chaillot":               "3",
	"Champs-Elysées":         "2",
	"Charonne":               "13",
	"Chaussée-d'Antin":       "2",
	"Clignancourt":           "9",
	"Combat":                 "14",
	"Croulebarbe":            "5",
	"Ecole-Militaire":        "1",
	"Enfants-Rouges":         "4",
	"Epinettes":              "11",
	"Europe":                 "3",
	"Faubourg-Montmartre":    "5",
	"Faubourg-du-Roule":      "2",
	"Folie-Méricourt":        "11",
	"Gaillon":                "2",
	"Gare":                   "13",
	"Goutte-d'Or":            "11",
	"Grandes-Carrières":      "9",
	"Grenelle":               "7",
	"Gros-Caillou":           "1",
	"Halles":                 "5",
	"Hôpital-Saint-Louis":    "11",
	"Invalides":              "1",
	"Jardin-des-Plantes":     "10",
	"Javel 15Art":            "7",
	"La Chapelle":            "13",
	"Madeleine":              "2",
	"Mail":                   "4",
	"Maison-Blanche":         "12",
	"Monnaie":                "2",
	"Montparnasse":           "5",
	"Muette":                 "3",
	"Necker":                 "6",
	"Notre-Dame":             "2",
	"Notre-Dame-des-Champs":  "1",
	"Odeon":                  "2",
	"Palais-Royal":           "2",
	"Parc-de-Montsouris":     "11",
	"Petit-Montrouge":        "10",
	"Picpus":                 "9",
	"Place-Vendôme":          "2",
	"Plaine de Monceaux":     "6",
	"Plaisance":              "12",
	"Pont-de-Flandre":        "13",
	"Porte-Dauphine":         "3",
	"Porte-Saint-Denis":      "5",
	"Porte-Saint-Martin":     "11",
	"Père-Lachaise":          "14",
	"Quinze-Vingts":          "11",
	"Rochechouart":           "5",
	"Roquette":               "11",
	"Saint-Ambroise":         "10",
	"Saint-Fargeau":          "13",
	"Saint-Georges":          "5",
	"Saint-Germain-des-Prés": "2",
	"Saint-Gervais":          "4",
	"Saint-Lambert":          "8",
	"Saint-Merri":            "2",
	"Saint-Thomas-d'Aquin":   "1",
	"Saint-Victor":           "4",
	"Saint-Vincent-de-Paul":  "5",
	"Sainte-Avoie":           "4",
	"Sainte-Marguerite":      "10",
	"Salpêtrière":            "10",
	"Sorbonne":               "4",
	"St-Germain-l'Auxerrois": "2",
	"Ternes":                 "6",
	"Val-de-Grace":           "4",
	"Villette":               "13",
	"Vivienne":               "4",
}

// sectors maps each neighborhood to its administrative quartier number.
var sectors = map[string]int{
	"St-Germain-l'Auxerrois": 1,
	"Halles":                 2,
	"Palais-Royal":           3,
	"Place-Vendôme":          4,
	"Gaillon":                5,
	"Vivienne":               6,
	"Mail":                   7,
	"Bonne-Nouvelle":         8,
	"Arts-et-Metiers":        9,
	"Enfants-Rouges":         10,
	"Archives":               11,
	"Sainte-Avoie":           12,
	"Saint-Merri":            13,
	"Saint-Gervais":          14,
	"Arsenal":                15,
	"Notre-Dame":             16,
	"Saint-Victor":           17,
	"Jardin-des-Plantes":     18,
	"Val-de-Grace":           19,
	"Sorbonne":               20,
	"Monnaie":                21,
	"Odeon":                  22,
	"Notre-Dame-des-Champs":  23,
	"Saint-Germain-des-Prés": 24,
	"Saint-Thomas-d'Aquin":   25,
	"Invalides":              26,
	"Ecole-Militaire":        27,
	"Gros-Caillou":           28,
	"Champs-Elysées":         29,
	"Faubourg-du-Roule":      30,
	"Madeleine":              31,
	"Europe":                 32,
	"Saint-Georges":          33,
	"Chaussée-d'Antin":       34,
	"Faubourg-Montmartre":    35,
	"Rochechouart":           36,
	"Saint-Vincent-de-Paul":  37,
	"Porte-Saint-Denis":      38,
	"Porte-Saint-Martin":     39,
	"Hôpital-Saint-Louis":    40,
	"Folie-Méricourt":        41,
	"Saint-Ambroise":         42,
	"Roquette":               43,
	"Sainte-Marguerite":      44,
	"Bel-Air":                45,
	"Picpus":                 46,
	"Bercy":                  47,
	"Quinze-Vingts":          48,
	"Salpêtrière":            49,
	"Gare":                   50,
	"Maison-Blanche":         51,
	"Croulebarbe":            52,
	"Montparnasse":           53,
	"Parc-de-Montsouris":     54,
	"Petit-Montrouge":        55,
	"Plaisance":              56,
	"Saint-Lambert":          57,
	"Necker":                 58,
	"Grenelle":               59,
	"Javel 15Art":            60,
	"Auteuil":                61,
	"Muette":                 62,
	"Porte-Dauphine":         63,
	"Chaillot":               64,
	"Ternes":                 65,
	"Plaine de Monceaux":     66,
	"Batignolles":            67,
	"Epinettes":              68,
	"Grandes-Carrières":      69,
	"Clignancourt":           70,
	"Goutte-d'Or":            71,
	"La Chapelle":            72,
	"Villette":               73,
	"Pont-de-Flandre":        74,
	"Amérique":               75,
	"Combat":                 76,
	"Belleville":             77,
	"Saint-Fargeau":          78,
	"Père-Lachaise":          79,
	"Charonne":               80,
}

var (
	periodLabels     = []string{"Before 1946", "1946-1970", "1971-1990", "After 1990"}
	rentalTypeLabels = []string{"Furnished", "Unfurnished"}
)

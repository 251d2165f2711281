package catalog

import "artisan/internal/models"

// Categories lists the category enumeration, sentinel first.
var Categories = []string{
	models.AllCategories,
	"Ceramics",
	"Leather Goods",
	"Textiles",
	"Woodwork",
	"Jewelry",
	"Glass Art",
	"Metalwork",
	"Sculpture",
}

// Materials is the reference list offered as material filters.
var Materials = []string{
	"Wood",
	"Metal",
	"Ceramic",
	"Glass",
	"Leather",
	"Fabric",
	"Stone",
	"Clay",
	"Silver",
	"Gold",
}

// DemoUser is the baseline identity that a simulated login starts from.
var DemoUser = models.User{
	ID:        "user1",
	Email:     "demo@artisanmarket.com",
	FirstName: "John",
	LastName:  "Doe",
	Avatar:    "https://images.pexels.com/photos/1040880/pexels-photo-1040880.jpeg?auto=compress&cs=tinysrgb&w=150",
	Phone:     "+1 (555) 123-4567",
	Address: &models.Address{
		Street:  "123 Main St",
		City:    "Denver",
		State:   "CO",
		ZipCode: "80201",
		Country: "USA",
	},
	IsArtisan: false,
}

func price(v float64) *float64 { return &v }

const imgBase = "https://images.pexels.com/photos/"

// Products returns a fresh copy of the seed catalog.
func Products() []models.Product {
	return []models.Product{
		{
			ID:            "1",
			Name:          "Handwoven Ceramic Bowl",
			Description:   "A beautiful ceramic bowl crafted using traditional pottery techniques. Perfect for serving salads, fruits, or as a decorative piece. Each bowl is unique with its own character and subtle variations.",
			Price:         45.00,
			OriginalPrice: price(60.00),
			Images: []string{
				imgBase + "6898825/pexels-photo-6898825.jpeg?auto=compress&cs=tinysrgb&w=800",
				imgBase + "7218414/pexels-photo-7218414.jpeg?auto=compress&cs=tinysrgb&w=800",
				imgBase + "6898837/pexels-photo-6898837.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Category: "Ceramics",
			Artisan: models.Artisan{
				ID:       "artisan1",
				Name:     "Elena Martinez",
				Avatar:   imgBase + "774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150",
				Location: "Santa Fe, NM",
			},
			Materials:   []string{"Stoneware Clay", "Lead-free Glaze"},
			Dimensions:  `8" diameter x 3" height`,
			Weight:      "1.2 lbs",
			InStock:     true,
			Featured:    true,
			Rating:      4.8,
			ReviewCount: 24,
			Tags:        []string{"handmade", "ceramic", "bowl", "kitchen", "decor"},
		},
		{
			ID:          "2",
			Name:        "Artisan Leather Journal",
			Description: "Hand-stitched leather journal with recycled paper pages. Features a rustic design with brass hardware and comes with a leather tie closure.",
			Price:       89.00,
			Images: []string{
				imgBase + "590478/pexels-photo-590478.jpeg?auto=compress&cs=tinysrgb&w=800",
				imgBase + "1029781/pexels-photo-1029781.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Category: "Leather Goods",
			Artisan: models.Artisan{
				ID:       "artisan2",
				Name:     "Marcus Thompson",
				Avatar:   imgBase + "220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=150",
				Location: "Austin, TX",
			},
			Materials:   []string{"Full-grain Leather", "Recycled Paper", "Brass Hardware"},
			Dimensions:  `6" x 8" x 1"`,
			Weight:      "0.8 lbs",
			InStock:     true,
			Featured:    false,
			Rating:      4.9,
			ReviewCount: 18,
			Tags:        []string{"leather", "journal", "notebook", "handcrafted", "vintage"},
		},
		{
			ID:          "3",
			Name:        "Handwoven Wool Throw",
			Description: "Luxurious wool throw blanket handwoven on a traditional loom. Features a geometric pattern inspired by Native American designs.",
			Price:       195.00,
			Images: []string{
				imgBase + "6031392/pexels-photo-6031392.jpeg?auto=compress&cs=tinysrgb&w=800",
				imgBase + "6444060/pexels-photo-6444060.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Category: "Textiles",
			Artisan: models.Artisan{
				ID:       "artisan3",
				Name:     "Sarah Running Bear",
				Avatar:   imgBase + "415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=150",
				Location: "Flagstaff, AZ",
			},
			Materials:   []string{"Merino Wool", "Natural Dyes"},
			Dimensions:  `50" x 60"`,
			Weight:      "2.5 lbs",
			InStock:     true,
			Featured:    true,
			Rating:      5.0,
			ReviewCount: 32,
			Tags:        []string{"wool", "throw", "blanket", "geometric", "native", "handwoven"},
		},
		{
			ID:          "4",
			Name:        "Carved Wooden Sculpture",
			Description: "Abstract wooden sculpture carved from reclaimed oak. Each piece is unique and celebrates the natural grain of the wood.",
			Price:       275.00,
			Images: []string{
				imgBase + "7937670/pexels-photo-7937670.jpeg?auto=compress&cs=tinysrgb&w=800",
				imgBase + "4992818/pexels-photo-4992818.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Category: "Woodwork",
			Artisan: models.Artisan{
				ID:       "artisan4",
				Name:     "David Chen",
				Avatar:   imgBase + "1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=150",
				Location: "Portland, OR",
			},
			Materials:   []string{"Reclaimed Oak", "Natural Wood Finish"},
			Dimensions:  `12" x 8" x 6"`,
			Weight:      "3.2 lbs",
			InStock:     true,
			Featured:    false,
			Rating:      4.7,
			ReviewCount: 15,
			Tags:        []string{"wood", "sculpture", "carved", "abstract", "reclaimed", "oak"},
		},
		{
			ID:          "5",
			Name:        "Sterling Silver Pendant Necklace",
			Description: "Handcrafted sterling silver pendant featuring intricate filigree work. Chain included. Perfect for special occasions or everyday elegance.",
			Price:       135.00,
			Images: []string{
				imgBase + "1191531/pexels-photo-1191531.jpeg?auto=compress&cs=tinysrgb&w=800",
				imgBase + "1457838/pexels-photo-1457838.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Category: "Jewelry",
			Artisan: models.Artisan{
				ID:       "artisan5",
				Name:     "Isabella Rodriguez",
				Avatar:   imgBase + "733872/pexels-photo-733872.jpeg?auto=compress&cs=tinysrgb&w=150",
				Location: "Taos, NM",
			},
			Materials:   []string{"Sterling Silver", "Natural Gemstone"},
			Dimensions:  `Pendant: 1.5" x 1", Chain: 18"`,
			Weight:      "0.3 oz",
			InStock:     true,
			Featured:    true,
			Rating:      4.9,
			ReviewCount: 41,
			Tags:        []string{"silver", "jewelry", "pendant", "necklace", "filigree", "handcrafted"},
		},
		{
			ID:          "6",
			Name:        "Hand-Blown Glass Vase",
			Description: "Elegant hand-blown glass vase with swirling color patterns. Each piece is one-of-a-kind due to the nature of glass blowing.",
			Price:       125.00,
			Images: []string{
				imgBase + "6207742/pexels-photo-6207742.jpeg?auto=compress&cs=tinysrgb&w=800",
				imgBase + "6207751/pexels-photo-6207751.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Category: "Glass Art",
			Artisan: models.Artisan{
				ID:       "artisan6",
				Name:     "Robert Glass",
				Avatar:   imgBase + "1043471/pexels-photo-1043471.jpeg?auto=compress&cs=tinysrgb&w=150",
				Location: "Venice, CA",
			},
			Materials:   []string{"Borosilicate Glass", "Colored Glass Rods"},
			Dimensions:  `8" height x 4" diameter`,
			Weight:      "1.5 lbs",
			InStock:     true,
			Featured:    false,
			Rating:      4.6,
			ReviewCount: 22,
			Tags:        []string{"glass", "vase", "blown", "colorful", "unique", "decorative"},
		},
	}
}

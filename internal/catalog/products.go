package catalog

import "github.com/aaravmahajanofficial/storefront/internal/models"

const starterPackContents = "3 pack of Pancit Canton, 10 Sardines, 1 sack of Rice"

var defaultProducts = []models.Product{
	{ID: "8", Name: "A1", Category: "Starter Pack", Price: "Php5000", Image: "assets/A1.jpg", Description: starterPackContents},
	{ID: "9", Name: "A2", Category: "Starter Pack", Price: "Php5500", Image: "assets/A1.jpg", Description: starterPackContents},
	{ID: "10", Name: "A3", Category: "Starter Pack", Price: "Php6000", Image: "assets/A1.jpg", Description: starterPackContents},
	{ID: "11", Name: "A4", Category: "Starter Pack", Price: "Php6500", Image: "assets/A1.jpg", Description: starterPackContents},
	{ID: "12", Name: "A5", Category: "Starter Pack", Price: "Php7000", Image: "assets/A1.jpg", Description: starterPackContents},
	{ID: "13", Name: "A6", Category: "Starter Pack", Price: "Php7500", Image: "assets/A1.jpg", Description: starterPackContents},
	{ID: "1", Name: "Pancit Canton", Category: "Snacks", Price: "Php102", Image: "assets/canton.webp", Options: []string{"Spicy", "Regular", "Extra Spicy", "Chilimansi"}},
	{ID: "2", Name: "Soft drinks", Category: "Beverages", Price: "Php89", Image: "assets/softdrinks.png", Options: []string{"CocaCola", "Pepsi", "Royal", "7up", "Mirinda"}},
	{ID: "3", Name: "Bottled water 320ml(per box)", Category: "Beverages", Price: "Php350", Image: "assets/bottledwater.jpg"},
	{ID: "4", Name: "Juice", Category: "Beverages", Price: "Php155", Image: "assets/juices.jpg", Options: []string{"Grape", "Mango", "Pineapple", "Lemon"}},
	{ID: "5", Name: "Coffee", Category: "Beverages", Price: "Php129", Image: "assets/kape.jpg", Options: []string{"Kopiko", "Nescafé", "Barako"}},
	{ID: "6", Name: "Emperador Lights(750ml)", Category: "Beverages", Price: "Php159", Image: "assets/emperadorlight.webp"},
	{ID: "7", Name: "Emperador Lights(1L)", Category: "Beverages", Price: "Php209", Image: "assets/emperador1L.jpg"},
}

// Default returns the store's built-in catalog.
func Default() *Catalog {
	return New(defaultProducts)
}

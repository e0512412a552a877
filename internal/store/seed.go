package store

// catalogSeed is the LuxeStore catalog. Ids, prices, and categories are part
// of the public contract (deep links use /product/{id}), so changing them
// requires updating the chat reply templates' expectations.
var catalogSeed = []Product{
	{
		ID:          1,
		Name:        "Wireless Headphones",
		Category:    "Electronics",
		Price:       299.99,
		Rating:      4.8,
		Stock:       34,
		Description: "Premium sound quality with noise cancellation",
		Image:       "/images/products/wireless-headphones.jpg",
	},
	{
		ID:          2,
		Name:        "Smart Watch Pro",
		Category:    "Electronics",
		Price:       399.99,
		Rating:      4.7,
		Stock:       21,
		Description: "Fitness tracking and heart rate monitoring",
		Image:       "/images/products/smart-watch-pro.jpg",
	},
	{
		ID:          3,
		Name:        "Designer Backpack",
		Category:    "Accessories",
		Price:       129.99,
		Rating:      4.6,
		Stock:       48,
		Description: "Durable and stylish with laptop compartment",
		Image:       "/images/products/designer-backpack.jpg",
	},
	{
		ID:          4,
		Name:        "Leather Wallet",
		Category:    "Accessories",
		Price:       79.99,
		Rating:      4.5,
		Stock:       62,
		Description: "Genuine leather with RFID protection",
		Image:       "/images/products/leather-wallet.jpg",
	},
	{
		ID:          5,
		Name:        "Running Shoes",
		Category:    "Footwear",
		Price:       159.99,
		Rating:      4.7,
		Stock:       40,
		Description: "Advanced cushioning technology and breathable design",
		Image:       "/images/products/running-shoes.jpg",
	},
	{
		ID:          6,
		Name:        "Sunglasses",
		Category:    "Accessories",
		Price:       189.99,
		Rating:      4.4,
		Stock:       55,
		Description: "UV400 protection with polarized lenses",
		Image:       "/images/products/sunglasses.jpg",
	},
	{
		ID:          7,
		Name:        "Portable Speaker",
		Category:    "Electronics",
		Price:       149.99,
		Rating:      4.6,
		Stock:       29,
		Description: "360° sound with 20-hour battery life",
		Image:       "/images/products/portable-speaker.jpg",
	},
	{
		ID:          8,
		Name:        "Premium Camera",
		Category:    "Electronics",
		Price:       1299.99,
		Rating:      4.9,
		Stock:       12,
		Description: "4K video and professional-grade features",
		Image:       "/images/products/premium-camera.jpg",
	},
}

package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/abnormalforhad/Spicy-website/internal/domain"
)

// SampleProducts is the initial spice catalog.
func SampleProducts() []domain.Product {
	now := time.Now()
	return []domain.Product{
		{
			ID:            uuid.New().String(),
			Name:          "Premium Red Chili Powder",
			Description:   "Authentic red chili powder made from the finest quality chilies. Perfect for adding heat and flavor to your dishes.",
			Price:         12.99,
			Category:      "Powders",
			Weight:        "250g",
			ImageURL:      "https://images.unsplash.com/photo-1596213812143-ff89bd9ddecd",
			StockQuantity: 100,
			Featured:      true,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New().String(),
			Name:          "Organic Turmeric Powder",
			Description:   "Pure organic turmeric powder with anti-inflammatory properties. Essential for healthy cooking and traditional recipes.",
			Price:         15.99,
			Category:      "Powders",
			Weight:        "200g",
			ImageURL:      "https://images.unsplash.com/photo-1613216514014-edb92d8e3e8d",
			StockQuantity: 100,
			Featured:      true,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New().String(),
			Name:          "Coriander Powder",
			Description:   "Freshly ground coriander seeds with a citrusy aroma. Essential for Indian and Mediterranean cuisine.",
			Price:         8.99,
			Category:      "Powders",
			Weight:        "150g",
			ImageURL:      "https://images.pexels.com/photos/8858686/pexels-photo-8858686.jpeg",
			StockQuantity: 100,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New().String(),
			Name:          "Garam Masala Blend",
			Description:   "Traditional blend of warming spices including cardamom, cinnamon, cloves, and black pepper.",
			Price:         18.99,
			Category:      "Blends",
			Weight:        "100g",
			ImageURL:      "https://images.unsplash.com/photo-1661022166287-1d1ae8dfaec4",
			StockQuantity: 100,
			Featured:      true,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New().String(),
			Name:          "Black Pepper Powder",
			Description:   "Freshly ground black peppercorns with intense flavor and aroma. The king of spices for your kitchen.",
			Price:         22.99,
			Category:      "Powders",
			Weight:        "100g",
			ImageURL:      "https://images.pexels.com/photos/13705489/pexels-photo-13705489.jpeg",
			StockQuantity: 100,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New().String(),
			Name:          "Cumin Powder",
			Description:   "Earthy and warm cumin powder ground from premium cumin seeds. Perfect for curries and spice blends.",
			Price:         10.99,
			Category:      "Powders",
			Weight:        "200g",
			ImageURL:      "https://images.unsplash.com/photo-1596213812143-ff89bd9ddecd",
			StockQuantity: 100,
			CreatedAt:     now,
		},
	}
}

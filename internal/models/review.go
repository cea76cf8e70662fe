package models

type CustomerFeedback struct {
	Restaurant        string `json:"restaurant"`
	Date              string `json:"date"`
	DeliveryRating    int    `json:"delivery_rating"`
	FoodQualityRating int    `json:"food_quality_rating"`
	FeedbackText      string `json:"feedback_text"`
}

package domain

// ValidationOptions maps the custom multi-choice validator tags to their option lists.
func ValidationOptions() map[string][]string {
	return map[string][]string{
		"line_of_business": LineOfBusinessOptions,
		"product_interest": ProductInterestOptions,
		"contact_category": ContactCategoryOptions,
	}
}

package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrImageTooLarge is returned when the uploaded image exceeds the size limit
	ErrImageTooLarge = errors.New("image exceeds maximum allowed size")

	// ErrCatalogUnavailable is returned when the product feed cannot be reached
	ErrCatalogUnavailable = errors.New("product catalog feed unavailable")

	// ErrCatalogEmpty is returned when the product feed returns no usable entries
	ErrCatalogEmpty = errors.New("product catalog feed returned no products")

	// ErrModelInvocation is returned when the vision model request fails
	ErrModelInvocation = errors.New("vision model request failed")

	// ErrEmptyModelResponse is returned when the model returns no content
	ErrEmptyModelResponse = errors.New("vision model returned empty response")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

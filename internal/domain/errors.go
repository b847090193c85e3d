package domain

import "errors"

var (
	// ErrInvalidImage is returned when the user image is not valid base64 or not a decodable raster
	ErrInvalidImage = errors.New("invalid image")

	// ErrUnsupportedImageType is returned when the decoded bytes are not an image format we can send
	ErrUnsupportedImageType = errors.New("unsupported image type")

	// ErrProviderFailure is returned when the model provider request fails
	ErrProviderFailure = errors.New("model provider request failed")

	// ErrEmptyResponse is returned when the provider answers without any text
	ErrEmptyResponse = errors.New("model returned no text")

	// ErrContentBlocked is returned when the provider refuses the prompt or image
	ErrContentBlocked = errors.New("model blocked the request")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)

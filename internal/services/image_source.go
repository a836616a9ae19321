package services

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/dormmarket/dormmarket-backend/internal/validation"
)

const maxImagesPerBatch = 6

// 5 MiB, matching the public upload limit.
const maxImageBytes = 5120 * 1024

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageRef is the normalized persistence form of one product image: the
// final URL pair plus the primary flag, regardless of whether the input was
// an upload or an external URL.
type ImageRef struct {
	URL          string
	ThumbnailURL *string
	IsPrimary    bool
}

// ImageInput is the polymorphic image payload of product creation and image
// upload: either uploaded files or external URLs, never both. Thumbnails, when
// present, must pair 1:1 with the primary list.
type ImageInput struct {
	Files          []*multipart.FileHeader
	ThumbnailFiles []*multipart.FileHeader
	URLs           []string
	ThumbnailURLs  []string
	PrimaryIndex   int
	// Required rejects an empty input (the upload endpoint); creation
	// tolerates image-less products.
	Required bool
}

func (in *ImageInput) hasFiles() bool { return len(in.Files) > 0 }
func (in *ImageInput) hasURLs() bool  { return len(in.URLs) > 0 }

// Normalize enforces the cross-field rules and clamps the primary index into
// range. An out-of-range index falls back to 0 rather than erroring; that
// leniency is long-standing client-observable behavior.
func (in *ImageInput) Normalize() *validation.Error {
	if in.hasFiles() && in.hasURLs() {
		return &validation.Error{Fields: validation.One(
			"image_urls", "The image_urls field cannot be used when uploading images files.")}
	}

	if in.hasURLs() && len(in.ThumbnailFiles) > 0 {
		return &validation.Error{Fields: validation.One(
			"thumbnail_images", "The thumbnail_images field cannot be used with image_urls.")}
	}

	if in.hasFiles() && len(in.ThumbnailURLs) > 0 {
		return &validation.Error{Fields: validation.One(
			"image_thumbnail_urls", "The image_thumbnail_urls field cannot be used when uploading images files.")}
	}

	if in.Required && !in.hasFiles() && !in.hasURLs() {
		return &validation.Error{Fields: validation.One(
			"images", "The images field is required.")}
	}

	if in.hasURLs() {
		if len(in.URLs) > maxImagesPerBatch {
			return &validation.Error{Fields: validation.One(
				"image_urls", "The image_urls may not have more than 6 items.")}
		}
		if len(in.ThumbnailURLs) > 0 && len(in.ThumbnailURLs) != len(in.URLs) {
			return &validation.Error{Fields: validation.One(
				"image_thumbnail_urls", "The image_thumbnail_urls count must match image_urls count.")}
		}
		if in.PrimaryIndex < 0 || in.PrimaryIndex >= len(in.URLs) {
			in.PrimaryIndex = 0
		}
		return nil
	}

	if in.hasFiles() {
		if len(in.Files) > maxImagesPerBatch {
			return &validation.Error{Fields: validation.One(
				"images", "The images may not have more than 6 items.")}
		}
		if fieldErrs := checkImageFiles("images", in.Files); fieldErrs != nil {
			return &validation.Error{Fields: fieldErrs}
		}
		if len(in.ThumbnailFiles) > 0 {
			if len(in.ThumbnailFiles) != len(in.Files) {
				return &validation.Error{Fields: validation.One(
					"thumbnail_images", "The thumbnail_images count must match images count.")}
			}
			if fieldErrs := checkImageFiles("thumbnail_images", in.ThumbnailFiles); fieldErrs != nil {
				return &validation.Error{Fields: fieldErrs}
			}
		}
		if in.PrimaryIndex < 0 || in.PrimaryIndex >= len(in.Files) {
			in.PrimaryIndex = 0
		}
	}

	return nil
}

// URLRefs materializes ImageRefs for URL-mode input. Call after Normalize.
func (in *ImageInput) URLRefs() []ImageRef {
	refs := make([]ImageRef, 0, len(in.URLs))
	for i, url := range in.URLs {
		ref := ImageRef{URL: url, IsPrimary: i == in.PrimaryIndex}
		if len(in.ThumbnailURLs) > 0 {
			thumb := in.ThumbnailURLs[i]
			if thumb != "" {
				ref.ThumbnailURL = &thumb
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

func checkImageFiles(field string, files []*multipart.FileHeader) validation.Errors {
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !allowedImageExts[ext] {
			return validation.One(field,
				"The "+field+" must be a file of type: jpg, jpeg, png, webp.")
		}
		if f.Size > maxImageBytes {
			return validation.One(field,
				"The "+field+" may not be greater than 5120 kilobytes.")
		}
	}
	return nil
}

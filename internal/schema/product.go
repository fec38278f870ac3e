// Package schema validates catalog API payloads and turns them into
// render-ready display products. Validation fails closed: the first invalid
// field rejects the whole payload.
package schema

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"html"
	"log/slog"
	"math"
	"reflect"
	"strings"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate = newValidator()
	strict   = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON names so errors point at the payload, not the Go struct
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("integral", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})

	return v
}

// nullableOptionals may be absent but must not be null; badge is the only
// optional key the API sends as null.
var nullableOptionals = []string{"description", "rating", "reviewCount", "createdAt", "updatedAt"}

func rejectNullOptionals(record map[string]json.RawMessage, path string) error {
	for _, key := range nullableOptionals {
		value, ok := record[key]
		if !ok || !bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			continue
		}
		slog.Warn("Catalog payload has null optional field", slog.String("field", path+key))
		return errors.AddSchemaError(path+key, "must not be null")
	}
	return nil
}

// ParseProductsResponse validates a collection body and transforms every
// product in input order.
func ParseProductsResponse(body []byte) (*models.ProductPage, error) {

	var raw models.RawProductsResponse
	if err := decode(body, &raw); err != nil {
		return nil, err
	}

	if err := validateStruct(&raw); err != nil {
		return nil, err
	}

	var records struct {
		Data []map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.SchemaError("Invalid response body").WithDetail(err.Error()).WithError(err)
	}
	for i, record := range records.Data {
		if err := rejectNullOptionals(record, fmt.Sprintf("data[%d].", i)); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]int, len(raw.Data))
	for i, p := range raw.Data {
		if j, dup := seen[*p.ID]; dup {
			return nil, errors.AddSchemaError(fmt.Sprintf("data[%d].id", i), fmt.Sprintf("duplicate of data[%d].id %q", j, *p.ID))
		}
		seen[*p.ID] = i
	}

	products := make([]models.Product, 0, len(raw.Data))
	for _, p := range raw.Data {
		products = append(products, Transform(p))
	}

	return &models.ProductPage{
		Products: products,
		Pagination: models.Pagination{
			Page:       int(*raw.Pagination.Page),
			Limit:      int(*raw.Pagination.Limit),
			Total:      int(*raw.Pagination.Total),
			TotalPages: int(*raw.Pagination.TotalPages),
		},
	}, nil
}

// ParseProduct validates a single product body.
func ParseProduct(body []byte) (*models.ProductDetail, error) {

	var raw models.RawProduct
	if err := decode(body, &raw); err != nil {
		return nil, err
	}

	if err := validateStruct(&raw); err != nil {
		return nil, err
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, errors.SchemaError("Invalid response body").WithDetail(err.Error()).WithError(err)
	}
	if err := rejectNullOptionals(record, ""); err != nil {
		return nil, err
	}

	detail := &models.ProductDetail{
		Product: Transform(raw),
		Sizes:   make([]string, 0, len(raw.Sizes)),
		Rating:  raw.Rating,
	}

	for _, size := range raw.Sizes {
		detail.Sizes = append(detail.Sizes, *size)
	}

	if raw.Description != nil {
		detail.Description = PlainText(*raw.Description)
	}

	if raw.ReviewCount != nil {
		n := int(*raw.ReviewCount)
		detail.ReviewCount = &n
	}

	return detail, nil
}

// Transform projects a validated raw product. It must only be called on
// records that passed validation.
func Transform(raw models.RawProduct) models.Product {

	product := models.Product{
		ID:     *raw.ID,
		Name:   *raw.Name,
		Type:   fmt.Sprintf("%s's %s", *raw.Gender, *raw.Category),
		Price:  *raw.Price,
		Colors: len(raw.Colors),
		Image:  *raw.ImageURL,
	}

	if raw.Badge != nil && *raw.Badge != "" {
		product.Badge = &models.Badge{
			Text:  *raw.Badge,
			Color: BadgeColorFor(*raw.Badge),
		}
	}

	return product
}

var (
	redKeywords   = []string{"off", "deal", "sale"}
	greenKeywords = []string{"sustainable", "eco", "new"}
)

// BadgeColorFor maps a badge label to its colour category; red wins over green.
func BadgeColorFor(label string) models.BadgeColor {
	lower := strings.ToLower(label)

	if containsAny(lower, redKeywords) {
		return models.BadgeRed
	}
	if containsAny(lower, greenKeywords) {
		return models.BadgeGreen
	}

	return models.BadgeBlue
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// PlainText strips markup from remote text.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

func decode(body []byte, dest any) error {

	if len(bytes.TrimSpace(body)) == 0 {
		return errors.SchemaError("Invalid response body").WithDetail("body is empty")
	}

	err := json.Unmarshal(body, dest)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if stdErrors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		slog.Warn("Catalog payload has wrong type", slog.String("field", field), slog.String("got", typeErr.Value))
		return errors.AddSchemaError(field, fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)).WithError(err)
	}

	slog.Warn("Catalog payload is not valid JSON", slog.String("error", err.Error()))
	return errors.SchemaError("Invalid response body").WithDetail(err.Error()).WithError(err)
}

func validateStruct(data any) error {

	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !stdErrors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return errors.SchemaError("Unexpected validation error").WithError(err)
	}

	first := validationErrs[0]
	field := fieldPath(first.Namespace())

	slog.Warn("Catalog payload validation failed",
		slog.String("field", field),
		slog.String("rule", first.Tag()),
		slog.Int("violations", len(validationErrs)),
	)

	return errors.AddSchemaError(field, reason(first)).WithError(validationErrs)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "integral":
		return "must be an integer"
	default:
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
}

// Package auth submits the sign-in and sign-up forms and keeps the returned
// access token in memory for the rest of the session.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/client"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

const (
	loginPath  = "/auth/login"
	signupPath = "/auth/signup"

	maxBodyBytes = 1 << 20
)

// form messages keyed by "<json field>.<tag>"
var messages = map[string]string{
	"fullName.required": "Full name is required",
	"fullName.min":      "Full name must be at least 2 characters",
	"email.required":    "Email is required",
	"email.email":       "Invalid email address",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 8 characters",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	return v
}

// Limiter throttles sign-in attempts before they reach the API.
type Limiter interface {
	CheckLoginRateLimit(ctx context.Context, email string) (bool, int, time.Duration, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    Limiter
}

type Option func(*Client)

func WithLimiter(l Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

func New(baseURL string, httpClient *http.Client, opts ...Option) (*Client, error) {

	u, err := client.ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = client.NewHTTPClient(nil, 10*time.Second)
	}

	c := &Client{baseURL: u.String(), httpClient: httpClient}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) SignIn(ctx context.Context, req models.LoginRequest) (*models.Session, error) {

	req.Email = strings.TrimSpace(req.Email)

	if err := validateForm(&req); err != nil {
		return nil, err
	}

	if err := c.checkRateLimit(ctx, req.Email); err != nil {
		return nil, err
	}

	return c.submit(ctx, loginPath, req, "Login failed")
}

func (c *Client) SignUp(ctx context.Context, req models.SignupRequest) (*models.Session, error) {

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	if err := validateForm(&req); err != nil {
		return nil, err
	}

	return c.submit(ctx, signupPath, req, "Signup failed")
}

// checkRateLimit lets the attempt through when the limiter itself fails.
func (c *Client) checkRateLimit(ctx context.Context, email string) error {

	if c.limiter == nil {
		return nil
	}

	allowed, remaining, retryAfter, err := c.limiter.CheckLoginRateLimit(ctx, strings.ToLower(email))
	if err != nil {
		client.LoggerFromContext(ctx).Warn("Rate limit check failed", slog.String("error", err.Error()))
		return nil
	}

	if !allowed {
		return errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry in %s", retryAfter.Round(time.Second)))
	}

	client.LoggerFromContext(ctx).Debug("Sign-in attempt recorded", slog.Int("attempts_left", remaining))

	return nil
}

func validateForm(form any) error {

	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stdErrors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return errors.InternalError("Failed to validate form").WithError(err)
	}

	fe := validationErrors[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return errors.ValidationError(msg)
	}

	return errors.AddValidationError(fe.Field(), fe.Tag())
}

func (c *Client) submit(ctx context.Context, path string, form any, failure string) (*models.Session, error) {

	payload, err := json.Marshal(form)
	if err != nil {
		return nil, errors.InternalError("Failed to encode form").WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.InternalError("Failed to build request").WithError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NetworkError(failure, 0).WithDetail(err.Error()).WithError(err)
	}
	defer resp.Body.Close()

	var body models.AuthResponse

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.NetworkError(failure, resp.StatusCode).WithDetail("failed to read response body").WithError(err)
	}

	// a non-JSON error body still fails with the status text
	_ = json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, failureError(resp, body.Message, failure)
	}

	return newSession(body.AccessToken), nil
}

// failureError surfaces the server's own message when it sent one.
func failureError(resp *http.Response, message, failure string) error {

	if message == "" {
		message = failure
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.UnauthorizedError(message)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		appErr := errors.ValidationError(message)
		appErr.StatusCode = resp.StatusCode
		return appErr
	default:
		return errors.NetworkError(failure, resp.StatusCode).WithDetail(http.StatusText(resp.StatusCode))
	}
}

// newSession reads sub, email and exp from the token without verifying its
// signature.
func newSession(token string) *models.Session {

	session := &models.Session{AccessToken: token}
	if token == "" {
		return session
	}

	var claims models.Claims

	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		slog.Debug("Access token is not a readable JWT", slog.String("error", err.Error()))
		return session
	}

	session.Subject = claims.Subject
	session.Email = claims.Email

	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session
}

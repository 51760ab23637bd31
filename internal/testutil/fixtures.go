package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	loginName string
	password  string
	firstName string
	lastName  string
	location  string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		loginName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:  "testpassword123",
		firstName: "Test",
		lastName:  "User",
	}
}

// WithLoginName sets the login name
func (b *UserBuilder) WithLoginName(name string) *UserBuilder {
	b.loginName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets first and last name
func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

// WithLocation sets the location
func (b *UserBuilder) WithLocation(location string) *UserBuilder {
	b.location = location
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		LoginName:    b.loginName,
		PasswordHash: string(hashedPassword),
		FirstName:    b.firstName,
		LastName:     b.lastName,
		Location:     b.location,
		CreatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndLogin creates the user in the database, logs in via the API and
// returns the user together with the raw session token
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"login_name": b.loginName,
		"password":   password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.URL("/admin/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	token := SessionToken(t, resp)
	return user, token
}

// SessionToken extracts the session cookie value from a response
func SessionToken(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_token" {
			return cookie.Value
		}
	}
	t.Fatal("no session_token cookie in response")
	return ""
}

// PhotoBuilder creates test photos with a builder pattern
type PhotoBuilder struct {
	owner    *domain.User
	fileName string
	dateTime time.Time
}

// NewPhotoBuilder creates a new PhotoBuilder with default values
func NewPhotoBuilder() *PhotoBuilder {
	return &PhotoBuilder{
		fileName: fmt.Sprintf("U%d test.jpg", time.Now().UnixMilli()),
		dateTime: time.Now(),
	}
}

// WithOwner sets the photo owner
func (b *PhotoBuilder) WithOwner(user *domain.User) *PhotoBuilder {
	b.owner = user
	return b
}

// WithFileName sets the stored file name
func (b *PhotoBuilder) WithFileName(name string) *PhotoBuilder {
	b.fileName = name
	return b
}

// WithDateTime sets the creation timestamp
func (b *PhotoBuilder) WithDateTime(ts time.Time) *PhotoBuilder {
	b.dateTime = ts
	return b
}

// Build creates the photo in the database
func (b *PhotoBuilder) Build(t *testing.T, db *gorm.DB) *domain.Photo {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	photo := &domain.Photo{
		ID:       uuid.New(),
		UserID:   b.owner.ID,
		FileName: b.fileName,
		DateTime: b.dateTime,
	}

	if err := db.Create(photo).Error; err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}

	return photo
}

// AddComment creates a comment on a photo directly in the database
func AddComment(t *testing.T, db *gorm.DB, photo *domain.Photo, author *domain.User, body string) *domain.Comment {
	t.Helper()

	comment := &domain.Comment{
		ID:       uuid.New(),
		PhotoID:  photo.ID,
		UserID:   author.ID,
		Comment:  body,
		DateTime: time.Now(),
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	return comment
}

// AddLike inserts a like directly in the database
func AddLike(t *testing.T, db *gorm.DB, photo *domain.Photo, user *domain.User) {
	t.Helper()

	like := &domain.PhotoLike{
		PhotoID:   photo.ID,
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}

	if err := db.Create(like).Error; err != nil {
		t.Fatalf("failed to create like: %v", err)
	}
}

// CreateSessionRequest creates an HTTP request carrying the session cookie
func CreateSessionRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader io.Reader = bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	}

	return req
}

// CreateUploadRequest creates a multipart photo upload request
func CreateUploadRequest(t *testing.T, url string, fieldName, fileName string, data []byte, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	}

	return req
}

package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCode(t *testing.T) {
	assert.Equal(t, NotFound, CanonicalCode(New(NotFound, "Raft group %d not found", 5)))
	assert.Equal(t, Internal, CanonicalCode(errors.New("plain")))

	wrapped := fmt.Errorf("while handling: %w", New(BadRequest, "Invalid partition id -1"))
	assert.Equal(t, BadRequest, CanonicalCode(wrapped))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Invalid raft group id -1", Message(New(BadRequest, "Invalid raft group id %d", -1)))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(BadRequest, "x")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(New(NotFound, "x")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(New(Unavailable, "x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(New(Internal, "x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

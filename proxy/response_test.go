package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	response, err := JSON(200, map[string]string{"tinh_trang": "Mưa <nhẹ> & gió"})

	assert.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
	assert.Equal(t, ContentTypeJSON, response.Headers["Content-Type"])
	assert.Equal(t, `{"tinh_trang":"Mưa <nhẹ> & gió"}`, response.Body)
	assert.False(t, response.IsBase64Encoded)
}

func TestJSON_error(t *testing.T) {
	_, err := JSON(200, map[string]interface{}{"bad": make(chan int)})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed encoding")
}

func TestJSONError(t *testing.T) {
	response, err := JSONError(500, "Không thể lấy dữ liệu xổ số.")

	assert.NoError(t, err)
	assert.Equal(t, 500, response.StatusCode)
	assert.Equal(t, `{"error":"Không thể lấy dữ liệu xổ số."}`, response.Body)
}

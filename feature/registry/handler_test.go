package registry

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"voter-registry/core/cache"
	cachemocks "voter-registry/core/cache/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, c cache.Cache) (*fiber.App, sqlmock.Sqlmock) {
	app := fiber.New()
	db, sqlMock := setupMockDB(t)
	svc := NewService(db, c, nil, "", zap.NewNop(), 0)
	handler := NewHandler(svc, zap.NewNop())
	handler.RegisterRoutes(app)
	return app, sqlMock
}

func multipartRoll(t *testing.T, batchName, fileName, content string) (*bytes.Buffer, string) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("batch_name", batchName))
	fw, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	app, sqlMock := setupTestApp(t, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery("SELECT (.+) FROM `batches`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	sqlMock.ExpectExec("INSERT INTO `batches`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectExec("INSERT INTO `records`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	body, contentType := multipartRoll(t, "BatchA", "file.txt", "নাম: আব্দুল করিম\n")
	req := httptest.NewRequest("POST", "/registry/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "roll ingested", out["message"])
	assert.EqualValues(t, 1, out["created"])
}

func TestHandleUpload_MissingBatchName(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	body, contentType := multipartRoll(t, "", "file.txt", "নাম: কেউ\n")
	req := httptest.NewRequest("POST", "/registry/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleUpload_UnparsableRoll(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	body, contentType := multipartRoll(t, "BatchA", "file.txt", "not a roll at all\n")
	req := httptest.NewRequest("POST", "/registry/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out["error"])
}

func TestHandleSync(t *testing.T) {
	cacheMock := new(cachemocks.Cache)
	cacheMock.On("Delete", mock.Anything, cache.RecordsKey).Return(nil).Once()
	app, sqlMock := setupTestApp(t, cacheMock)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("DELETE FROM `records`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	sqlMock.ExpectCommit()

	req := httptest.NewRequest("POST", "/registry/sync",
		strings.NewReader(`{"deleted":[4,5]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "sync complete", out["message"])
	assert.EqualValues(t, 2, out["deleted"])
	cacheMock.AssertNumberOfCalls(t, "Delete", 1)
}

func TestHandleSync_EmptyRequest(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	req := httptest.NewRequest("POST", "/registry/sync", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListBatches(t *testing.T) {
	app, sqlMock := setupTestApp(t, nil)

	sqlMock.ExpectQuery("SELECT (.+) FROM `batches`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "BatchA").AddRow(2, "BatchB"))

	resp, err := app.Test(httptest.NewRequest("GET", "/registry/batches", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out, 2)
}

func TestHandleListRecords(t *testing.T) {
	app, sqlMock := setupTestApp(t, nil)

	sqlMock.ExpectQuery("SELECT (.+) FROM `records`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Someone"))

	resp, err := app.Test(httptest.NewRequest("GET", "/registry/records", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "Someone", out[0]["name"])
}

package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"iotplatform"
	"iotplatform/internal/api/handler/middleware"
	"iotplatform/internal/api/models"
)

// newTestRouter wires every API handler against a fresh in-memory database.
// Dev mode authenticates every request as middleware.DevUserID.
func newTestRouter(t *testing.T, mode string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), iotplatform.GormConfig())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if conn, err := db.DB(); err == nil {
			conn.Close()
		}
	})

	cfg := iotplatform.AppConfig{Mode: mode}
	cfg.JWTConfig.Secret = "test-secret"

	iotplatform.DB = db
	iotplatform.Logger = zerolog.Nop()
	iotplatform.Redis = nil
	iotplatform.Nats = nil
	iotplatform.SetConfig(cfg)

	router := gin.New()
	newCodeHandler().register(router)
	newProjectHandler().register(router)
	newDeviceHandler().register(router)
	newAIModelHandler().register(router)
	newTutorialHandler().register(router)
	newUserHandler().register(router)
	return router, db
}

func devUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{ID: middleware.DevUserID, Email: "dev@example.com", Name: "Dev", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

const ledBlocks = `<xml xmlns="https://developers.google.com/blockly/xml">
  <block type="iot_led_set"><field name="PIN">13</field><field name="STATE">ON</field></block>
</xml>`

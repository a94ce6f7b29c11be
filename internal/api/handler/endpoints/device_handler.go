package endpoints

import (
	"errors"
	"net/http"

	"iotplatform"
	"iotplatform/internal/api/handler/mapper"
	"iotplatform/internal/api/handler/middleware"
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/service"
	"iotplatform/internal/gen"
	"iotplatform/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type deviceHandler struct {
	deviceService *service.DeviceService
	deviceMapper  mapper.DeviceMapper
	config        iotplatform.AppConfig
	logger        zerolog.Logger
}

func newDeviceHandler() *deviceHandler {
	return &deviceHandler{
		deviceService: service.NewDeviceService(),
		deviceMapper:  mapper.NewDeviceMapper(),
		config:        iotplatform.GetConfig(),
		logger:        iotplatform.Logger,
	}
}

func DeviceHandler(router *graceful.Graceful) {
	newDeviceHandler().register(router)
}

func (slf *deviceHandler) register(router gin.IRouter) {
	routes := router.Group("/api/v1/devices")
	routes.Use(middleware.AuthMiddleware(slf.config))
	{
		routes.GET("", slf.getAll)
		routes.POST("", slf.registerDevice)
		routes.GET("/:id", slf.getByID)
		routes.PUT("/:id", slf.update)
		routes.DELETE("/:id", slf.delete)
		routes.POST("/:id/ping", slf.ping)
		routes.POST("/:id/upload", slf.upload)
		routes.GET("/:id/sensor-data", slf.sensorData)
	}
}

func (slf *deviceHandler) getAll(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	devices, err := slf.deviceService.FindAllForOwner(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve devices"})
		return
	}
	c.JSON(http.StatusOK, slf.deviceMapper.ToDeviceResponses(devices))
}

// registerDevice adds a device and returns its provisioning key, the only time the key is shown
func (slf *deviceHandler) registerDevice(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	var req request.CreateDevice
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	device, err := slf.deviceService.Register(slf.deviceMapper.CreateDevice(req), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to register device"})
		return
	}
	c.JSON(http.StatusCreated, response.RegisteredDevice{
		Device:          slf.deviceMapper.ToDeviceResponse(*device),
		ProvisioningKey: device.ProvisioningKey,
	})
}

func (slf *deviceHandler) getByID(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	device, err := slf.deviceService.FindOwned(id, userID)
	if err != nil {
		slf.writeError(c, err, "Failed to retrieve device")
		return
	}
	c.JSON(http.StatusOK, slf.deviceMapper.ToDeviceResponse(*device))
}

func (slf *deviceHandler) update(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.UpdateDevice
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	device, err := slf.deviceService.Update(id, userID, func(d *models.Device) {
		slf.deviceMapper.PatchDevice(req, d)
	})
	if err != nil {
		slf.writeError(c, err, "Failed to update device")
		return
	}
	c.JSON(http.StatusOK, slf.deviceMapper.ToDeviceResponse(*device))
}

func (slf *deviceHandler) delete(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := slf.deviceService.Delete(id, userID); err != nil {
		slf.writeError(c, err, "Failed to remove device")
		return
	}
	c.Status(http.StatusNoContent)
}

func (slf *deviceHandler) ping(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	device, err := slf.deviceService.Ping(id, userID)
	if err != nil {
		slf.writeError(c, err, "Failed to ping device")
		return
	}
	c.JSON(http.StatusOK, slf.deviceMapper.ToDeviceResponse(*device))
}

// upload sends a project's code, or code from the body, to the device
func (slf *deviceHandler) upload(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.UploadCode
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	device, err := slf.deviceService.Upload(c.Request.Context(), id, userID, req, pkg.GetRequestID(c))
	if err != nil {
		slf.writeError(c, err, "Failed to upload code")
		return
	}
	c.JSON(http.StatusOK, response.Status{Status: "success", Message: "Code uploaded to " + device.Name})
}

func (slf *deviceHandler) sensorData(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	limit := queryInt(c, "limit", service.DefaultSensorDataLimit)
	readings, err := slf.deviceService.SensorData(id, userID, c.Query("sensor_type"), limit)
	if err != nil {
		slf.writeError(c, err, "Failed to retrieve sensor data")
		return
	}
	c.JSON(http.StatusOK, slf.deviceMapper.ToSensorDataResponses(readings))
}

func (slf *deviceHandler) writeError(c *gin.Context, err error, msg string) {
	var genErr *gen.GenerationError
	switch {
	case errors.Is(err, service.ErrDeviceNotFound):
		c.JSON(http.StatusNotFound, response.APIError{Message: "Device not found"})
	case errors.Is(err, service.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, response.APIError{Message: "Project not found"})
	case errors.Is(err, service.ErrNothingToUpload):
		c.JSON(http.StatusBadRequest, response.APIError{Message: "No code to upload"})
	case errors.As(err, &genErr), errors.Is(err, gen.ErrUnsupportedLanguage):
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Code generation failed: " + err.Error()})
	case errors.Is(err, service.ErrBusUnavailable):
		c.JSON(http.StatusServiceUnavailable, response.APIError{Message: "Device messaging is not configured"})
	default:
		c.JSON(http.StatusInternalServerError, response.APIError{Message: msg})
	}
}

// Package sim implements an in-process simulator for the three observatory
// daemons. It serves the same JSON envelope protocol the real daemons
// speak, which makes it usable both for tel development and for exercising
// the daemon clients in tests.
package sim

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stargrove/telctl/internal/telcode"
)

var stateLabels = map[int]string{
	0: "DISABLED",
	1: "INITIALIZING",
	2: "SLEWING",
	3: "STOPPED",
	4: "TRACKING",
	5: "GUIDING",
}

// Simulator holds the mutable state of all three simulated daemons.
type Simulator struct {
	mu sync.Mutex

	initialized bool
	state       int
	ra, dec     float64
	alt, az     float64
	lst         float64
	offsetRA    float64
	offsetDec   float64
	focusUM     float64

	guideCamera string

	switches map[string]bool

	logger *zap.Logger
}

// New creates a simulator with the drive and cover switches powered on and
// the telescope uninitialized.
func New(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		switches: map[string]bool{
			"telescope_80v":    true,
			"telescope_covers": true,
		},
		focusUM: 1200,
		logger:  logger.With(zap.String("component", "sim")),
	}
}

type envelope struct {
	ClientID      string          `json:"client_id"`
	TransactionID int32           `json:"transaction_id"`
	Params        json.RawMessage `json:"params"`
}

// reply writes the daemon response envelope. A non-zero status carries its
// canonical message so protocol traces stay readable.
func reply(c *gin.Context, status telcode.Code, value any) {
	body := gin.H{"status": int(status)}
	if value != nil {
		body["value"] = value
	}
	if msg, ok := telcode.Message(status); ok && status != telcode.Succeeded {
		body["error_message"] = msg
	}
	c.JSON(http.StatusOK, body)
}

// Router builds the gin engine serving all three daemon endpoints.
func (s *Simulator) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	teld := router.Group("/teld")
	teld.POST("/ping", s.pong)
	teld.POST("/report_status", s.handleReportStatus)
	teld.POST("/initialize", s.handleInitialize)
	teld.POST("/shutdown", s.handleShutdown)
	teld.POST("/stop", s.handleStop)
	teld.POST("/slew_radec", s.motion(s.applySlewRaDec))
	teld.POST("/slew_altaz", s.motion(s.applySlewAltAz))
	teld.POST("/track_radec", s.motion(s.applyTrackRaDec))
	teld.POST("/offset_radec", s.motion(s.applyOffsetRaDec))
	teld.POST("/set_focus", s.motion(s.applySetFocus))
	teld.POST("/find_homes", s.motion(s.applyCalibration))
	teld.POST("/find_limits", s.motion(s.applyCalibration))
	teld.POST("/open_covers", s.motion(s.applyCalibration))
	teld.POST("/close_covers", s.motion(s.applyCalibration))
	teld.POST("/start_guiding", s.handleStartGuiding)
	teld.POST("/stop_guiding", s.handleStopGuiding)

	powerd := router.Group("/powerd")
	powerd.POST("/ping", s.pong)
	powerd.POST("/switch", s.handleSwitch)
	powerd.POST("/value", s.handleValue)

	pipelined := router.Group("/pipelined")
	pipelined.POST("/ping", s.pong)
	pipelined.POST("/set_guide_camera", s.handleSetGuideCamera)

	return router
}

func (s *Simulator) pong(c *gin.Context) {
	reply(c, telcode.Succeeded, nil)
}

func (s *Simulator) handleReportStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply(c, telcode.Succeeded, gin.H{
		"state":              s.state,
		"state_label":        stateLabels[s.state],
		"pointing_state":     pointingLabel(s.state),
		"ra":                 s.ra,
		"dec":                s.dec,
		"alt":                s.alt,
		"az":                 s.az,
		"lst":                s.lst,
		"offset_ra":          s.offsetRA,
		"offset_dec":         s.offsetDec,
		"telescope_focus_um": s.focusUM,
	})
}

func pointingLabel(state int) string {
	switch state {
	case 4, 5:
		return "SIDEREAL"
	case 2, 3:
		return "FIXED"
	default:
		return ""
	}
}

func (s *Simulator) handleInitialize(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		reply(c, telcode.AlreadyInitialized, nil)
		return
	}
	s.initialized = true
	s.state = 3
	s.logger.Info("Telescope initialized")
	reply(c, telcode.Succeeded, nil)
}

func (s *Simulator) handleShutdown(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = false
	s.state = 0
	s.logger.Info("Telescope shut down")
	reply(c, telcode.Succeeded, nil)
}

func (s *Simulator) handleStop(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		s.state = 3
	}
	reply(c, telcode.Succeeded, nil)
}

// motion wraps a state transition with the initialization precondition
// shared by every motion and calibration method.
func (s *Simulator) motion(apply func(c *gin.Context) telcode.Code) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.initialized {
			reply(c, telcode.NotInitialized, nil)
			return
		}
		reply(c, apply(c), nil)
	}
}

func bindParams(c *gin.Context, params any) bool {
	var env envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		return false
	}
	if params == nil {
		return true
	}
	return json.Unmarshal(env.Params, params) == nil
}

func (s *Simulator) applySlewRaDec(c *gin.Context) telcode.Code {
	var params struct {
		RA  float64 `json:"ra"`
		Dec float64 `json:"dec"`
	}
	if !bindParams(c, &params) {
		return telcode.Failed
	}
	s.ra, s.dec = params.RA, params.Dec
	s.state = 3
	return telcode.Succeeded
}

func (s *Simulator) applySlewAltAz(c *gin.Context) telcode.Code {
	var params struct {
		Alt float64 `json:"alt"`
		Az  float64 `json:"az"`
	}
	if !bindParams(c, &params) {
		return telcode.Failed
	}
	s.alt, s.az = params.Alt, params.Az
	s.state = 3
	return telcode.Succeeded
}

func (s *Simulator) applyTrackRaDec(c *gin.Context) telcode.Code {
	var params struct {
		RA  float64 `json:"ra"`
		Dec float64 `json:"dec"`
	}
	if !bindParams(c, &params) {
		return telcode.Failed
	}
	s.ra, s.dec = params.RA, params.Dec
	s.state = 4
	return telcode.Succeeded
}

func (s *Simulator) applyOffsetRaDec(c *gin.Context) telcode.Code {
	var params struct {
		RA  float64 `json:"ra"`
		Dec float64 `json:"dec"`
	}
	if !bindParams(c, &params) {
		return telcode.Failed
	}
	s.offsetRA += params.RA
	s.offsetDec += params.Dec
	return telcode.Succeeded
}

func (s *Simulator) applySetFocus(c *gin.Context) telcode.Code {
	var params struct {
		Position float64 `json:"position"`
	}
	if !bindParams(c, &params) {
		return telcode.Failed
	}
	s.focusUM = params.Position
	return telcode.Succeeded
}

func (s *Simulator) applyCalibration(*gin.Context) telcode.Code {
	s.state = 3
	return telcode.Succeeded
}

func (s *Simulator) handleStartGuiding(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case !s.initialized:
		reply(c, telcode.NotInitialized, nil)
	case s.state == 5:
		reply(c, telcode.AlreadyGuiding, nil)
	case s.state != 4:
		reply(c, telcode.GuideStartFailed, nil)
	default:
		s.state = 5
		reply(c, telcode.Succeeded, nil)
	}
}

func (s *Simulator) handleStopGuiding(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != 5 {
		reply(c, telcode.NotGuiding, nil)
		return
	}
	s.state = 4
	reply(c, telcode.Succeeded, nil)
}

func (s *Simulator) handleSwitch(c *gin.Context) {
	var params struct {
		Name   string `json:"name"`
		Enable bool   `json:"enable"`
	}
	if !bindParams(c, &params) {
		reply(c, telcode.Failed, nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.switches[params.Name]; !ok {
		reply(c, telcode.Succeeded, false)
		return
	}
	s.switches[params.Name] = params.Enable
	s.logger.Info("Switch toggled",
		zap.String("name", params.Name),
		zap.Bool("enable", params.Enable))
	reply(c, telcode.Succeeded, true)
}

func (s *Simulator) handleValue(c *gin.Context) {
	var params struct {
		Name string `json:"name"`
	}
	if !bindParams(c, &params) {
		reply(c, telcode.Failed, nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reply(c, telcode.Succeeded, s.switches[params.Name])
}

func (s *Simulator) handleSetGuideCamera(c *gin.Context) {
	var params struct {
		Camera   *string `json:"camera"`
		TileSize int     `json:"tile_size"`
	}
	if !bindParams(c, &params) {
		reply(c, telcode.Failed, nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if params.Camera == nil {
		s.guideCamera = ""
		reply(c, telcode.Succeeded, nil)
		return
	}
	if *params.Camera != "blue" && *params.Camera != "red" {
		reply(c, telcode.GuideCameraFailed, nil)
		return
	}
	s.guideCamera = *params.Camera
	reply(c, telcode.Succeeded, nil)
}

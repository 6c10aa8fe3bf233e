package ops

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stargrove/telctl/internal/config"
	"github.com/stargrove/telctl/internal/daemon"
	"github.com/stargrove/telctl/internal/telcode"
)

// fakeTeld records the methods invoked on it and answers each from a
// per-method code table (defaulting to success).
type fakeTeld struct {
	calls     []string
	codes     map[string]telcode.Code
	status    *daemon.TelescopeStatus
	lastAlt   float64
	lastAz    float64
	lastRA    float64
	lastDec   float64
	lastFocus float64
}

func (f *fakeTeld) code(method string) telcode.Code {
	f.calls = append(f.calls, method)
	return f.codes[method]
}

func (f *fakeTeld) Ping(ctx context.Context) telcode.Code { return f.code("ping") }

func (f *fakeTeld) ReportStatus(ctx context.Context) (*daemon.TelescopeStatus, telcode.Code) {
	if code := f.code("report_status"); code != telcode.Succeeded {
		return nil, code
	}
	return f.status, telcode.Succeeded
}

func (f *fakeTeld) OpenCovers(ctx context.Context) telcode.Code  { return f.code("open_covers") }
func (f *fakeTeld) CloseCovers(ctx context.Context) telcode.Code { return f.code("close_covers") }

func (f *fakeTeld) SlewAltAz(ctx context.Context, alt, az float64) telcode.Code {
	f.lastAlt, f.lastAz = alt, az
	return f.code("slew_altaz")
}

func (f *fakeTeld) SlewRaDec(ctx context.Context, ra, dec float64) telcode.Code {
	f.lastRA, f.lastDec = ra, dec
	return f.code("slew_radec")
}

func (f *fakeTeld) TrackRaDec(ctx context.Context, ra, dec float64) telcode.Code {
	f.lastRA, f.lastDec = ra, dec
	return f.code("track_radec")
}

func (f *fakeTeld) OffsetRaDec(ctx context.Context, dra, ddec float64) telcode.Code {
	f.lastRA, f.lastDec = dra, ddec
	return f.code("offset_radec")
}

func (f *fakeTeld) SetFocus(ctx context.Context, position float64) telcode.Code {
	f.lastFocus = position
	return f.code("set_focus")
}

func (f *fakeTeld) FindHomes(ctx context.Context) telcode.Code    { return f.code("find_homes") }
func (f *fakeTeld) FindLimits(ctx context.Context) telcode.Code   { return f.code("find_limits") }
func (f *fakeTeld) StartGuiding(ctx context.Context) telcode.Code { return f.code("start_guiding") }
func (f *fakeTeld) StopGuiding(ctx context.Context) telcode.Code  { return f.code("stop_guiding") }
func (f *fakeTeld) Stop(ctx context.Context) telcode.Code         { return f.code("stop") }
func (f *fakeTeld) Initialize(ctx context.Context) telcode.Code   { return f.code("initialize") }
func (f *fakeTeld) Shutdown(ctx context.Context) telcode.Code     { return f.code("shutdown") }

type fakePowerd struct {
	values    map[string]bool
	valueErr  error
	switchOK  bool
	switchErr error
	switched  map[string]bool
}

func (f *fakePowerd) Switch(ctx context.Context, name string, enable bool) (bool, error) {
	if f.switchErr != nil {
		return false, f.switchErr
	}
	if f.switched == nil {
		f.switched = map[string]bool{}
	}
	f.switched[name] = enable
	return f.switchOK, nil
}

func (f *fakePowerd) Value(ctx context.Context, name string) (bool, error) {
	if f.valueErr != nil {
		return false, f.valueErr
	}
	return f.values[name], nil
}

type guideCall struct {
	camera string
	tile   int
	frame  string
}

type fakePipeline struct {
	calls []guideCall
	codes []telcode.Code // consumed per call; empty means success
}

func (f *fakePipeline) SetGuideCamera(ctx context.Context, camera string, tileSize int, referenceFrame string) telcode.Code {
	f.calls = append(f.calls, guideCall{camera: camera, tile: tileSize, frame: referenceFrame})
	if len(f.codes) == 0 {
		return telcode.Succeeded
	}
	code := f.codes[0]
	f.codes = f.codes[1:]
	return code
}

type env struct {
	ops      *Ops
	teld     *fakeTeld
	powerd   *fakePowerd
	pipeline *fakePipeline
	out      *bytes.Buffer
}

func newEnv() *env {
	teld := &fakeTeld{codes: map[string]telcode.Code{}}
	powerd := &fakePowerd{values: map[string]bool{"telescope_80v": true, "telescope_covers": true}, switchOK: true}
	pipeline := &fakePipeline{}
	out := &bytes.Buffer{}

	return &env{
		ops: &Ops{
			Teld:     teld,
			Powerd:   powerd,
			Pipeline: pipeline,
			Config: &config.Config{
				DrivePowerSwitch: "telescope_80v",
				CoverPowerSwitch: "telescope_covers",
				RebootDelay:      0,
			},
			Logger: zap.NewNop(),
			Out:    out,
		},
		teld:     teld,
		powerd:   powerd,
		pipeline: pipeline,
		out:      out,
	}
}

func TestDrive(t *testing.T) {
	ctx := context.Background()

	t.Run("enable toggles the drive switch", func(t *testing.T) {
		e := newEnv()
		assert.Equal(t, telcode.Succeeded, e.ops.Drive(ctx, true))
		assert.Equal(t, map[string]bool{"telescope_80v": true}, e.powerd.switched)
	})

	t.Run("switch refusal maps to failure", func(t *testing.T) {
		e := newEnv()
		e.powerd.switchOK = false
		assert.Equal(t, telcode.Failed, e.ops.Drive(ctx, false))
	})

	t.Run("unreachable power daemon", func(t *testing.T) {
		e := newEnv()
		e.powerd.switchErr = errors.New("connection refused")
		assert.Equal(t, telcode.PowerDaemonError, e.ops.Drive(ctx, true))
	})
}

func TestParkUnknownNameListsValidPositions(t *testing.T) {
	e := newEnv()
	code := e.ops.Park(context.Background(), "unknown_name")

	assert.Equal(t, telcode.UsageError, code)
	assert.Contains(t, e.out.String(), "stow")
	assert.Contains(t, e.out.String(), "zenith")
	assert.Empty(t, e.teld.calls, "telescope daemon must not be contacted")
}

func TestParkWithDrivePowerDisabled(t *testing.T) {
	e := newEnv()
	e.powerd.values["telescope_80v"] = false

	code := e.ops.Park(context.Background(), "stow")
	assert.Equal(t, telcode.DrivePowerDisabled, code)
	assert.Empty(t, e.teld.calls, "telescope daemon must not be contacted")
}

func TestParkSlewsToStoredPosition(t *testing.T) {
	e := newEnv()
	code := e.ops.Park(context.Background(), "stow")

	assert.Equal(t, telcode.Succeeded, code)
	assert.Equal(t, []string{"ping", "slew_altaz"}, e.teld.calls)
	assert.Equal(t, 0.616, e.teld.lastAlt)
	assert.Equal(t, 0.405, e.teld.lastAz)
}

func TestParkPowerDaemonUnreachable(t *testing.T) {
	e := newEnv()
	e.powerd.valueErr = errors.New("connection refused")

	assert.Equal(t, telcode.PowerDaemonError, e.ops.Park(context.Background(), "zenith"))
	assert.Empty(t, e.teld.calls)
}

func TestPointingCommandsCheckPowerThenPing(t *testing.T) {
	ctx := context.Background()

	t.Run("slew", func(t *testing.T) {
		e := newEnv()
		assert.Equal(t, telcode.Succeeded, e.ops.Slew(ctx, 1.0, -0.5))
		assert.Equal(t, []string{"ping", "slew_radec"}, e.teld.calls)
		assert.Equal(t, 1.0, e.teld.lastRA)
		assert.Equal(t, -0.5, e.teld.lastDec)
	})

	t.Run("track", func(t *testing.T) {
		e := newEnv()
		assert.Equal(t, telcode.Succeeded, e.ops.Track(ctx, 2.0, 0.25))
		assert.Equal(t, []string{"ping", "track_radec"}, e.teld.calls)
	})

	t.Run("offset checks drive power like a slew", func(t *testing.T) {
		e := newEnv()
		e.powerd.values["telescope_80v"] = false
		assert.Equal(t, telcode.DrivePowerDisabled, e.ops.Offset(ctx, 0.001, 0))
		assert.Empty(t, e.teld.calls)
	})

	t.Run("ping failure aborts before the primary call", func(t *testing.T) {
		e := newEnv()
		e.teld.codes["ping"] = telcode.TelescopeDaemonError
		assert.Equal(t, telcode.TelescopeDaemonError, e.ops.Slew(ctx, 1, 1))
		assert.Equal(t, []string{"ping"}, e.teld.calls)
	})
}

func TestCalCommands(t *testing.T) {
	ctx := context.Background()

	e := newEnv()
	assert.Equal(t, telcode.Succeeded, e.ops.CalHome(ctx))
	assert.Equal(t, []string{"ping", "find_homes"}, e.teld.calls)

	e = newEnv()
	e.teld.codes["find_limits"] = telcode.LimitSearchFailed
	assert.Equal(t, telcode.LimitSearchFailed, e.ops.CalLimits(ctx))
}

func TestFocusSkipsDrivePowerCheck(t *testing.T) {
	e := newEnv()
	e.powerd.values["telescope_80v"] = false

	assert.Equal(t, telcode.Succeeded, e.ops.Focus(context.Background(), 1250.5))
	assert.Equal(t, []string{"set_focus"}, e.teld.calls)
	assert.Equal(t, 1250.5, e.teld.lastFocus)
}

func TestGuideArmFailureNeverContactsTelescope(t *testing.T) {
	e := newEnv()
	e.pipeline.codes = []telcode.Code{telcode.Failed}

	code := e.ops.GuideStart(context.Background(), GuideCameraBlue, 32, "")

	assert.Equal(t, telcode.PipelineDaemonError, code)
	assert.Empty(t, e.teld.calls, "telescope daemon must not be contacted")
	require.Len(t, e.pipeline.calls, 1)
	assert.Equal(t, guideCall{camera: "blue", tile: 32}, e.pipeline.calls[0])
}

func TestGuideRollbackOnStartFailure(t *testing.T) {
	e := newEnv()
	e.teld.codes["start_guiding"] = telcode.GuideStartFailed

	code := e.ops.GuideStart(context.Background(), GuideCameraRed, 16, "/data/ref.fits")

	assert.Equal(t, telcode.GuideStartFailed, code)
	require.Len(t, e.pipeline.calls, 2, "arm then rollback disarm")
	assert.Equal(t, guideCall{camera: "red", tile: 16, frame: "/data/ref.fits"}, e.pipeline.calls[0])
	assert.Equal(t, guideCall{}, e.pipeline.calls[1], "rollback must disarm")
}

func TestGuideNoRollbackWhenAlreadyGuiding(t *testing.T) {
	e := newEnv()
	e.teld.codes["start_guiding"] = telcode.AlreadyGuiding

	code := e.ops.GuideStart(context.Background(), GuideCameraBlue, 32, "")

	assert.Equal(t, telcode.AlreadyGuiding, code)
	assert.Len(t, e.pipeline.calls, 1, "already guiding must not trigger a rollback")
}

func TestGuideRollbackFailureOnlyWarns(t *testing.T) {
	e := newEnv()
	e.teld.codes["start_guiding"] = telcode.Failed
	e.pipeline.codes = []telcode.Code{telcode.Succeeded, telcode.Failed}

	code := e.ops.GuideStart(context.Background(), GuideCameraBlue, 32, "")

	assert.Equal(t, telcode.Failed, code, "disarm failure must not change the returned code")
	assert.Contains(t, e.out.String(), "warning: failed to disarm pipeline guide camera")
}

func TestGuideStopDisarmIsWarnOnly(t *testing.T) {
	e := newEnv()
	e.pipeline.codes = []telcode.Code{telcode.PipelineDaemonError}

	code := e.ops.GuideStop(context.Background())

	assert.Equal(t, telcode.Succeeded, code)
	assert.Contains(t, e.out.String(), "warning: failed to disarm pipeline guide camera")
	assert.Equal(t, []string{"ping", "stop_guiding"}, e.teld.calls)
}

func TestGuidePauseLeavesPipelineArmed(t *testing.T) {
	e := newEnv()

	code := e.ops.GuidePause(context.Background())

	assert.Equal(t, telcode.Succeeded, code)
	assert.Empty(t, e.pipeline.calls)
	assert.Equal(t, []string{"ping", "stop_guiding"}, e.teld.calls)
}

func TestGuideResumeSkipsArming(t *testing.T) {
	e := newEnv()

	code := e.ops.GuideResume(context.Background())

	assert.Equal(t, telcode.Succeeded, code)
	assert.Empty(t, e.pipeline.calls)
	assert.Equal(t, []string{"ping", "start_guiding"}, e.teld.calls)
}

func TestStopSequence(t *testing.T) {
	e := newEnv()

	code := e.ops.Stop(context.Background())

	assert.Equal(t, telcode.Succeeded, code)
	require.Len(t, e.pipeline.calls, 1)
	assert.Equal(t, guideCall{}, e.pipeline.calls[0])
	assert.Equal(t, []string{"ping", "stop"}, e.teld.calls)
}

func TestRebootReturnsInitializeCode(t *testing.T) {
	t.Run("shutdown failure is discarded", func(t *testing.T) {
		e := newEnv()
		e.teld.codes["shutdown"] = telcode.Failed

		code := e.ops.Reboot(context.Background())

		assert.Equal(t, telcode.Succeeded, code)
		assert.Equal(t, []string{"ping", "shutdown", "ping", "initialize"}, e.teld.calls)
	})

	t.Run("initialize failure propagates", func(t *testing.T) {
		e := newEnv()
		e.teld.codes["initialize"] = telcode.HardwareInitFailed

		assert.Equal(t, telcode.HardwareInitFailed, e.ops.Reboot(context.Background()))
	})
}

func TestStatusDisabledShortForm(t *testing.T) {
	e := newEnv()
	e.teld.status = &daemon.TelescopeStatus{
		State:      daemon.StateDisabled,
		StateLabel: "DISABLED",
	}

	code := e.ops.Status(context.Background())

	assert.Equal(t, telcode.Succeeded, code)
	out := e.out.String()
	assert.Contains(t, out, "DISABLED")
	assert.Contains(t, out, "Drive power")
	assert.NotContains(t, out, "RA")
}

func TestStatusFullReport(t *testing.T) {
	e := newEnv()
	e.teld.status = &daemon.TelescopeStatus{
		State:            daemon.StateTracking,
		StateLabel:       "TRACKING",
		PointingState:    "SIDEREAL",
		RA:               1.0,
		Dec:              -0.25,
		Altitude:         0.9,
		Azimuth:          2.0,
		LST:              1.1,
		TelescopeFocusUM: 1234.5,
	}

	code := e.ops.Status(context.Background())

	assert.Equal(t, telcode.Succeeded, code)
	out := e.out.String()
	assert.Contains(t, out, "TRACKING")
	assert.Contains(t, out, "SIDEREAL")
	assert.Contains(t, out, "Focus 1234.5 um")
	assert.Contains(t, out, "ENABLED")
	assert.NotContains(t, out, "offset", "zero offsets must not be rendered")
}

func TestStatusRendersNonZeroOffsets(t *testing.T) {
	e := newEnv()
	e.teld.status = &daemon.TelescopeStatus{
		State:      daemon.StateGuiding,
		StateLabel: "GUIDING",
		OffsetRA:   0.0001,
		OffsetDec:  -0.0002,
	}

	require.Equal(t, telcode.Succeeded, e.ops.Status(context.Background()))
	assert.Contains(t, e.out.String(), "RA offset")
	assert.Contains(t, e.out.String(), "Dec offset")
}

func TestStatusPowerdUnreachableDegradesToUnknown(t *testing.T) {
	e := newEnv()
	e.teld.status = &daemon.TelescopeStatus{State: daemon.StateStopped, StateLabel: "STOPPED"}
	e.powerd.valueErr = errors.New("connection refused")

	assert.Equal(t, telcode.Succeeded, e.ops.Status(context.Background()))
	assert.Contains(t, e.out.String(), "UNKNOWN")
}

func TestCheckCoverPower(t *testing.T) {
	e := newEnv()
	e.powerd.values["telescope_covers"] = false
	assert.Equal(t, telcode.CoverPowerDisabled, e.ops.CheckCoverPower(context.Background()))

	e.powerd.values["telescope_covers"] = true
	assert.Equal(t, telcode.Succeeded, e.ops.CheckCoverPower(context.Background()))
}

func TestRunInterruptiblePassesThroughResult(t *testing.T) {
	e := newEnv()
	code := e.ops.runInterruptible(context.Background(), func(context.Context) telcode.Code {
		return telcode.SlewFailed
	})
	assert.Equal(t, telcode.SlewFailed, code)
}

func TestInterruptTriggersStopSequence(t *testing.T) {
	e := newEnv()
	interrupts := make(chan os.Signal, 1)
	e.ops.interrupts = interrupts

	block := make(chan struct{})
	defer close(block)

	interrupts <- os.Interrupt
	code := e.ops.runInterruptible(context.Background(), func(context.Context) telcode.Code {
		<-block
		return telcode.Succeeded
	})

	assert.Equal(t, telcode.Interrupted, code, "clean stop remaps to interrupted")
	assert.Contains(t, e.teld.calls, "stop")
	require.NotEmpty(t, e.pipeline.calls, "stop sequence disarms the guide camera")
}

func TestInterruptReportsFailedStop(t *testing.T) {
	e := newEnv()
	interrupts := make(chan os.Signal, 1)
	e.ops.interrupts = interrupts
	e.teld.codes["stop"] = telcode.StopFailed

	block := make(chan struct{})
	defer close(block)

	interrupts <- os.Interrupt
	code := e.ops.runInterruptible(context.Background(), func(context.Context) telcode.Code {
		<-block
		return telcode.Succeeded
	})

	assert.Equal(t, telcode.StopFailed, code)
}

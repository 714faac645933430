package mock

import (
	"errors"
	"testing"
	"time"

	"github.com/harmonikfm/stagehand/internal/domain"
)

func TestLoadAndUnload(t *testing.T) {
	engine := NewEngine()
	defer func() { _ = engine.Close() }()

	handle, err := engine.Load("/music/huling-sandali.mp3")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if handle == domain.InvalidTrackHandle {
		t.Fatal("Load returned invalid handle")
	}
	if engine.LoadedCount() != 1 {
		t.Errorf("Expected 1 loaded source, got %d", engine.LoadedCount())
	}

	if err := engine.Unload(handle); err != nil {
		t.Errorf("Unload failed: %v", err)
	}
	if engine.LoadedCount() != 0 {
		t.Errorf("Expected 0 loaded sources after unload, got %d", engine.LoadedCount())
	}

	if err := engine.Unload(handle); !errors.Is(err, domain.ErrInvalidTrackHandle) {
		t.Errorf("Expected ErrInvalidTrackHandle, got %v", err)
	}
}

func TestLoadEmptySource(t *testing.T) {
	engine := NewEngine()
	defer func() { _ = engine.Close() }()

	_, err := engine.Load("")
	if !errors.Is(err, domain.ErrInvalidSourcePath) {
		t.Errorf("Expected ErrInvalidSourcePath, got %v", err)
	}
}

func TestFailureHooks(t *testing.T) {
	engine := NewEngine()
	defer func() { _ = engine.Close() }()

	engine.SetFailLoad(true)
	if _, err := engine.Load("/music/bulong.mp3"); err == nil {
		t.Error("Expected load to fail with failLoad set")
	}
	engine.SetFailLoad(false)

	handle, err := engine.Load("/music/bulong.mp3")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	engine.SetFailPlay(true)
	if err := engine.Play(handle); !errors.Is(err, domain.ErrPlaybackFailed) {
		t.Errorf("Expected ErrPlaybackFailed, got %v", err)
	}
	engine.SetFailPlay(false)

	if err := engine.Play(handle); err != nil {
		t.Errorf("Play failed: %v", err)
	}
}

func TestPlayPauseStop(t *testing.T) {
	engine := NewEngine()
	defer func() { _ = engine.Close() }()

	handle, err := engine.Load("/music/jopay.mp3")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	status, _ := engine.Status(handle)
	if status != domain.StatusIdle {
		t.Errorf("Expected idle after load, got %s", status)
	}

	if err := engine.Play(handle); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	status, _ = engine.Status(handle)
	if status != domain.StatusPlaying {
		t.Errorf("Expected playing, got %s", status)
	}

	if err := engine.Pause(handle); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	status, _ = engine.Status(handle)
	if status != domain.StatusPaused {
		t.Errorf("Expected paused, got %s", status)
	}

	if err := engine.Stop(handle); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	status, _ = engine.Status(handle)
	if status != domain.StatusIdle {
		t.Errorf("Expected idle after stop, got %s", status)
	}
	pos, _ := engine.Position(handle)
	if pos != 0 {
		t.Errorf("Expected position 0 after stop, got %v", pos)
	}

	// Stop keeps the source loaded
	if engine.LoadedCount() != 1 {
		t.Errorf("Expected source to stay loaded after stop, got %d", engine.LoadedCount())
	}
}

func TestSeekBounds(t *testing.T) {
	engine := NewEngine()
	defer func() { _ = engine.Close() }()

	handle, _ := engine.Load("/music/binibini.mp3")

	if err := engine.Seek(handle, time.Minute); err != nil {
		t.Errorf("Seek failed: %v", err)
	}
	pos, _ := engine.Position(handle)
	if pos != time.Minute {
		t.Errorf("Expected position 1m, got %v", pos)
	}

	if err := engine.Seek(handle, -time.Second); !errors.Is(err, domain.ErrInvalidPosition) {
		t.Errorf("Expected ErrInvalidPosition for negative seek, got %v", err)
	}
	if err := engine.Seek(handle, time.Hour); !errors.Is(err, domain.ErrInvalidPosition) {
		t.Errorf("Expected ErrInvalidPosition for seek past end, got %v", err)
	}
}

func TestSetVolume(t *testing.T) {
	engine := NewEngine()
	defer func() { _ = engine.Close() }()

	handle, _ := engine.Load("/music/sirena.mp3")

	if err := engine.SetVolume(handle, 0.4); err != nil {
		t.Errorf("SetVolume failed: %v", err)
	}
	vol, _ := engine.Volume(handle)
	if vol != 0.4 {
		t.Errorf("Expected volume 0.4, got %f", vol)
	}

	if err := engine.SetVolume(handle, 1.5); !errors.Is(err, domain.ErrInvalidVolume) {
		t.Errorf("Expected ErrInvalidVolume, got %v", err)
	}
}

func TestNaturalEnd(t *testing.T) {
	engine := NewEngine()
	defer func() { _ = engine.Close() }()

	handle, _ := engine.Load("/music/hari-ng-sablay.mp3")
	if err := engine.SetDuration(handle, 10*time.Second); err != nil {
		t.Fatalf("SetDuration failed: %v", err)
	}
	_ = engine.Play(handle)

	if err := engine.SimulateProgress(handle, 4*time.Second); err != nil {
		t.Fatalf("SimulateProgress failed: %v", err)
	}
	status, _ := engine.Status(handle)
	if status != domain.StatusPlaying {
		t.Errorf("Expected playing mid-track, got %s", status)
	}

	// Running past the duration finishes the track but keeps it loaded
	if err := engine.SimulateProgress(handle, 10*time.Second); err != nil {
		t.Fatalf("SimulateProgress failed: %v", err)
	}
	status, _ = engine.Status(handle)
	if status != domain.StatusIdle {
		t.Errorf("Expected idle after reaching the end, got %s", status)
	}
	if engine.LoadedCount() != 1 {
		t.Errorf("Expected finished source to stay loaded, got %d", engine.LoadedCount())
	}
}

func TestFinishHook(t *testing.T) {
	engine := NewEngine()
	defer func() { _ = engine.Close() }()

	handle, _ := engine.Load("/music/antukin.mp3")
	_ = engine.Play(handle)

	if err := engine.Finish(handle); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	status, _ := engine.Status(handle)
	if status != domain.StatusIdle {
		t.Errorf("Expected idle after finish, got %s", status)
	}
	pos, _ := engine.Position(handle)
	dur, _ := engine.Duration(handle)
	if pos != dur {
		t.Errorf("Expected position at duration after finish, got %v of %v", pos, dur)
	}
}

func TestClose(t *testing.T) {
	engine := NewEngine()

	handle, _ := engine.Load("/music/migraine.mp3")

	if err := engine.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	if _, err := engine.Load("/music/migraine.mp3"); !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized after close, got %v", err)
	}
	if err := engine.Play(handle); !errors.Is(err, domain.ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized after close, got %v", err)
	}
	if err := engine.Close(); err == nil {
		t.Error("Expected error on double close")
	}
}

package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建使用临时目录的 gdata Manager
func createTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.PlaybackSpeed != 1.0 {
		t.Errorf("PlaybackSpeed: got %v, want 1.0", settings.PlaybackSpeed)
	}
	if settings.LastTimeline != "" {
		t.Errorf("LastTimeline: got %q, want 空字符串", settings.LastTimeline)
	}
	if !settings.ShowPaths {
		t.Error("ShowPaths: got false, want true")
	}
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	gdataManager := createTestGdataManager(t, "test_settings")

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm == nil {
		t.Fatal("NewSettingsManager() returned nil")
	}

	// 没有存档时使用默认设置
	settings := sm.Settings()
	if settings == nil {
		t.Fatal("Settings() returned nil after initialization")
	}
	if settings.PlaybackSpeed != 1.0 {
		t.Errorf("Initial PlaybackSpeed: got %v, want 1.0", settings.PlaybackSpeed)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm == nil {
		t.Fatal("NewSettingsManager(nil) returned nil")
	}

	settings := sm.Settings()
	if settings == nil {
		t.Fatal("Settings() returned nil in degraded mode")
	}
	if settings.PlaybackSpeed != 1.0 {
		t.Errorf("Degraded mode PlaybackSpeed: got %v, want 1.0", settings.PlaybackSpeed)
	}

	// 降级模式下保存是无操作，不报错
	if err := sm.Save(); err != nil {
		t.Errorf("降级模式 Save() error: %v", err)
	}
}

// TestSettingsLoadSave 测试设置的保存与重新加载
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := createTestGdataManager(t, "test_settings_load_save")

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	if err := sm.SetPlaybackSpeed(2.0); err != nil {
		t.Fatalf("SetPlaybackSpeed() error: %v", err)
	}
	if err := sm.SetLastTimeline("patrol"); err != nil {
		t.Fatalf("SetLastTimeline() error: %v", err)
	}

	// 用同一个存储重新创建管理器，设置应该被恢复
	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("重建 SettingsManager error: %v", err)
	}
	settings := sm2.Settings()
	if settings.PlaybackSpeed != 2.0 {
		t.Errorf("重新加载后 PlaybackSpeed: got %v, want 2.0", settings.PlaybackSpeed)
	}
	if settings.LastTimeline != "patrol" {
		t.Errorf("重新加载后 LastTimeline: got %q, want patrol", settings.LastTimeline)
	}
}

// TestSetPlaybackSpeedClamped 测试播放倍率的范围限制
func TestSetPlaybackSpeedClamped(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"低于下限", 0.1, 0.25},
		{"下限", 0.25, 0.25},
		{"正常值", 1.5, 1.5},
		{"上限", 4.0, 4.0},
		{"高于上限", 10.0, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sm.SetPlaybackSpeed(tt.input); err != nil {
				t.Fatalf("SetPlaybackSpeed(%v) error: %v", tt.input, err)
			}
			if got := sm.Settings().PlaybackSpeed; got != tt.expected {
				t.Errorf("PlaybackSpeed: got %v, want %v", got, tt.expected)
			}
		})
	}
}

package config

import "log"

// defaultTimelineYAML 内置的演示时间线
// 宿主没有提供配置文件时使用
const defaultTimelineYAML = `
version: "1.0"
timelines:
  patrol:
    forever: true
    steps:
      - type: move_by
        duration: 1.5
        delta: {x: 160, y: 0, z: 0}
        easing: [ease_in_out_quad]
      - type: move_by
        duration: 1.5
        delta: {x: -160, y: 0, z: 0}
        easing: [ease_in_out_quad]
  bounce:
    repeat: 3
    steps:
      - type: parallel
        steps:
          - type: move_by
            duration: 0.6
            delta: {x: 0, y: -80, z: 0}
            easing: [ease_out_quad]
          - type: scale_to
            duration: 0.6
            scale: {x: 1.2, y: 0.8, z: 1}
      - type: parallel
        steps:
          - type: move_by
            duration: 0.6
            delta: {x: 0, y: 80, z: 0}
            easing: [ease_in_quad]
          - type: scale_to
            duration: 0.6
            scale: {x: 1, y: 1, z: 1}
  swirl:
    speed: 1.25
    steps:
      - type: bezier_by
        duration: 2.0
        cp1: {x: 120, y: -120, z: 0}
        cp2: {x: 240, y: 120, z: 0}
        end: {x: 320, y: 0, z: 0}
        easing: [ease_in_out_sine]
      - type: rotate_by
        duration: 1.0
        delta: {x: 0, y: 0, z: 360}
      - type: delay
        duration: 0.5
`

// DefaultTimelineConfig 返回内置的演示时间线配置
func DefaultTimelineConfig() *TimelineConfigFile {
	cfg, err := ParseTimelineConfig([]byte(defaultTimelineYAML))
	if err != nil {
		// 内置配置解析失败属于程序错误，测试会兜住
		log.Printf("[TimelineConfig] 内置配置解析失败: %v", err)
		return &TimelineConfigFile{Version: "1.0"}
	}
	return cfg
}

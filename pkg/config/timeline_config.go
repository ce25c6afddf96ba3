// Package config 提供时间线脚本的加载与编译
//
// 时间线脚本用 YAML 描述一串动作步骤（移动/旋转/缩放/贝塞尔/延迟，
// 支持嵌套的顺序与并行分组），编译成可交给动作管理器运行的动作树。
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/decker502/motion/pkg/action"
	"github.com/decker502/motion/pkg/types"
	"github.com/decker502/motion/pkg/utils"
	"gopkg.in/yaml.v3"
)

// TimelineConfigFile 定义时间线配置文件结构
type TimelineConfigFile struct {
	Version   string                    `yaml:"version"`
	Timelines map[string]TimelineConfig `yaml:"timelines"`
}

// TimelineConfig 定义单条时间线
type TimelineConfig struct {
	Repeat  int          `yaml:"repeat"`  // 重复次数，<=1 表示不重复
	Forever bool         `yaml:"forever"` // 无限重复（优先于 repeat）
	Speed   float64      `yaml:"speed"`   // 时间倍率，0 表示不包装
	Tag     *int         `yaml:"tag"`     // 可选：整棵动作树的标签
	Steps   []StepConfig `yaml:"steps"`
}

// StepConfig 定义时间线中的单个步骤
type StepConfig struct {
	Type     string  `yaml:"type"`     // 步骤类型，如 move_by、delay、parallel
	Duration float64 `yaml:"duration"` // 时长（秒）

	Delta    *VecConfig `yaml:"delta"`    // move_by / rotate_by 的增量
	Position *VecConfig `yaml:"position"` // move_to 的终点
	Angle    *VecConfig `yaml:"angle"`    // rotate_to 的目标角度
	Scale    *VecConfig `yaml:"scale"`    // scale_to 的目标缩放
	Factor   *VecConfig `yaml:"factor"`   // scale_by 的倍率
	CP1      *VecConfig `yaml:"cp1"`      // 贝塞尔第一控制点
	CP2      *VecConfig `yaml:"cp2"`      // 贝塞尔第二控制点
	End      *VecConfig `yaml:"end"`      // 贝塞尔终点

	Easing    []string     `yaml:"easing"`    // 缓动管线，按序组合
	Stackable bool         `yaml:"stackable"` // 叠加模式（move_by/rotate_by/bezier_by）
	Tag       *int         `yaml:"tag"`       // 可选：步骤标签
	Steps     []StepConfig `yaml:"steps"`     // sequence / parallel 的嵌套步骤
}

// VecConfig 三维向量的配置形式
type VecConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// vec 转换为 types.Vec3；nil 视为零向量
func (v *VecConfig) vec() types.Vec3 {
	if v == nil {
		return types.Vec3{}
	}
	return types.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// EaseFuncs 配置中可用的缓动函数名
var EaseFuncs = map[string]utils.EaseFunc{
	"linear":            utils.EaseLinear,
	"ease_in_quad":      utils.EaseInQuad,
	"ease_out_quad":     utils.EaseOutQuad,
	"ease_in_out_quad":  utils.EaseInOutQuad,
	"ease_in_cubic":     utils.EaseInCubic,
	"ease_out_cubic":    utils.EaseOutCubic,
	"ease_in_out_cubic": utils.EaseInOutCubic,
	"ease_in_expo":      utils.EaseInExpo,
	"ease_out_expo":     utils.EaseOutExpo,
	"ease_in_sine":      utils.EaseInSine,
	"ease_out_sine":     utils.EaseOutSine,
	"ease_in_out_sine":  utils.EaseInOutSine,
	"ease_in_back":      utils.EaseInBack,
	"ease_out_back":     utils.EaseOutBack,
}

// LoadTimelineConfig 加载时间线配置文件
func LoadTimelineConfig(path string) (*TimelineConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline config '%s': %w", path, err)
	}
	return ParseTimelineConfig(data)
}

// ParseTimelineConfig 解析时间线配置内容
func ParseTimelineConfig(data []byte) (*TimelineConfigFile, error) {
	cfg := &TimelineConfigFile{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse timeline config: %w", err)
	}

	if cfg.Version == "" {
		log.Printf("[TimelineConfig] Warning: 配置文件缺少 version 字段")
	}
	if len(cfg.Timelines) == 0 {
		log.Printf("[TimelineConfig] Warning: 配置文件没有定义任何时间线")
	}

	log.Printf("[TimelineConfig] 加载完成 (version=%s, timelines=%d)",
		cfg.Version, len(cfg.Timelines))
	return cfg, nil
}

// Build 把时间线编译成动作树
func (c *TimelineConfig) Build() (action.Action, error) {
	inner, err := buildSteps(c.Steps)
	if err != nil {
		return nil, err
	}

	var result action.Action = inner
	if c.Forever {
		result = action.NewRepeatForever(inner)
	} else if c.Repeat > 1 {
		result = action.NewRepeat(inner, c.Repeat)
	}
	if c.Speed > 0 && c.Speed != 1 {
		result = action.NewSpeed(result, c.Speed)
	}
	if c.Tag != nil {
		result.SetTag(*c.Tag)
	}
	return result, nil
}

// BuildTimeline 编译配置文件中指定名字的时间线
func (f *TimelineConfigFile) BuildTimeline(name string) (action.Action, error) {
	tl, ok := f.Timelines[name]
	if !ok {
		return nil, fmt.Errorf("timeline '%s' not found", name)
	}
	return tl.Build()
}

// Names 返回所有时间线名字
func (f *TimelineConfigFile) Names() []string {
	names := make([]string, 0, len(f.Timelines))
	for name := range f.Timelines {
		names = append(names, name)
	}
	return names
}

// buildSteps 把步骤列表左折叠成序列
func buildSteps(steps []StepConfig) (action.FiniteAction, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("timeline has no steps")
	}
	built := make([]action.FiniteAction, 0, len(steps))
	for i := range steps {
		a, err := buildStep(&steps[i])
		if err != nil {
			return nil, err
		}
		built = append(built, a)
	}
	return action.NewSequence(built...), nil
}

// easeable 可挂接缓动管线的动作
type easeable interface {
	Easing(fns ...utils.EaseFunc)
}

// buildStep 编译单个步骤
func buildStep(step *StepConfig) (action.FiniteAction, error) {
	var a action.FiniteAction

	switch step.Type {
	case "move_by":
		m := action.NewMoveBy(step.Duration, step.Delta.vec())
		m.SetStackable(step.Stackable)
		a = m
	case "move_to":
		a = action.NewMoveTo(step.Duration, step.Position.vec())
	case "rotate_by":
		r := action.NewRotateBy(step.Duration, step.Delta.vec())
		r.SetStackable(step.Stackable)
		a = r
	case "rotate_to":
		a = action.NewRotateTo(step.Duration, step.Angle.vec())
	case "scale_by":
		a = action.NewScaleBy(step.Duration, step.Factor.vec())
	case "scale_to":
		a = action.NewScaleTo(step.Duration, step.Scale.vec())
	case "bezier_by":
		b := action.NewBezierBy(step.Duration, action.BezierConfig{
			CP1: step.CP1.vec(),
			CP2: step.CP2.vec(),
			End: step.End.vec(),
		})
		b.SetStackable(step.Stackable)
		a = b
	case "bezier_to":
		a = action.NewBezierTo(step.Duration, action.BezierConfig{
			CP1: step.CP1.vec(),
			CP2: step.CP2.vec(),
			End: step.End.vec(),
		})
	case "delay":
		a = action.NewDelayTime(step.Duration)
	case "sequence":
		inner, err := buildSteps(step.Steps)
		if err != nil {
			return nil, err
		}
		a = inner
	case "parallel":
		if len(step.Steps) == 0 {
			return nil, fmt.Errorf("parallel step has no children")
		}
		children := make([]action.FiniteAction, 0, len(step.Steps))
		for i := range step.Steps {
			child, err := buildStep(&step.Steps[i])
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		a = action.NewSpawn(children...)
	default:
		return nil, fmt.Errorf("unknown step type '%s'", step.Type)
	}

	if len(step.Easing) > 0 {
		fns := make([]utils.EaseFunc, 0, len(step.Easing))
		for _, name := range step.Easing {
			fn, ok := EaseFuncs[name]
			if !ok {
				return nil, fmt.Errorf("unknown easing '%s'", name)
			}
			fns = append(fns, fn)
		}
		if e, ok := a.(easeable); ok {
			e.Easing(fns...)
		} else {
			log.Printf("[TimelineConfig] Warning: 步骤类型 '%s' 不支持缓动，已忽略", step.Type)
		}
	}
	if step.Tag != nil {
		a.SetTag(*step.Tag)
	}
	return a, nil
}

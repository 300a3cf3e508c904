package cache

import (
	"context"
	"time"
)

const globalMultiplierCacheTTL = 5 * time.Minute

const globalMultiplierKey = "pricing:global_multiplier"

// globalMultiplierState 全局系数缓存载体。
// 定价读路径允许最终一致，缓存过期后回源数据库。
type globalMultiplierState struct {
	Value     float64 `json:"value"`
	UpdatedAt int64   `json:"updated_at"`
}

// GetGlobalMultiplier 读取全局系数缓存
func GetGlobalMultiplier(ctx context.Context) (float64, bool, error) {
	var state globalMultiplierState
	hit, err := GetJSON(ctx, globalMultiplierKey, &state)
	if err != nil || !hit {
		return 0, hit, err
	}
	return state.Value, true, nil
}

// SetGlobalMultiplier 写入全局系数缓存
func SetGlobalMultiplier(ctx context.Context, value float64) error {
	return SetJSON(ctx, globalMultiplierKey, globalMultiplierState{
		Value:     value,
		UpdatedAt: time.Now().Unix(),
	}, globalMultiplierCacheTTL)
}

// DelGlobalMultiplier 删除全局系数缓存（写入新值后失效旧值）
func DelGlobalMultiplier(ctx context.Context) error {
	return Del(ctx, globalMultiplierKey)
}

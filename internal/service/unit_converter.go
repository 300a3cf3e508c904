package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yanhua-ledger/internal/models"
)

// 规格文本里的第一个数字即每箱件数，如 "16发/箱" → "16"
var specNumberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// NormalizeSpec 从规格自由文本中提取首个数字并返回其规范字符串。
// 找不到数字返回空串。
func NormalizeSpec(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return specNumberPattern.FindString(text)
}

// PackSize 解析规格文本得到每箱件数。缺失、为零或为负时回退为 1。
func PackSize(text string) int {
	normalized := NormalizeSpec(text)
	if normalized == "" {
		return 1
	}
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil || value <= 0 {
		return 1
	}
	size := int(value)
	if size <= 0 {
		return 1
	}
	return size
}

// PackSizeOf 取商品规格对应的每箱件数
func PackSizeOf(product *models.Product) int {
	if product == nil || product.Spec == nil {
		return 1
	}
	return PackSize(*product.Spec)
}

// ApplyUnitDelta 对库存行施加带符号的件数变动。
// 先折算为总件数，加上变动量并在 0 处截断，再按每箱件数拆回整箱/散件。
// 所有库存数量变更必须经过这里，保证 0 <= 散件 < 每箱件数。
func ApplyUnitDelta(inventory *models.Inventory, packSize, deltaUnits int) {
	if packSize <= 0 {
		packSize = 1
	}
	total := inventory.TotalUnits(packSize) + deltaUnits
	if total < 0 {
		total = 0
	}
	if packSize > 1 {
		inventory.BoxCount = total / packSize
		inventory.LooseUnits = total % packSize
		return
	}
	inventory.BoxCount = total
	inventory.LooseUnits = 0
}

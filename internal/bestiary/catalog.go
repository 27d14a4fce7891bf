package bestiary

import (
	"github.com/mobdex/server/internal/data"
	"go.uber.org/zap"
)

// Prober 驗證一個 kind 能否在目前的世界中實際生成為生物。
// 實作會生成一個探測實體並立即銷毀（見 Spawner）。
type Prober interface {
	Probe(kind string) error
}

// Catalog 決定哪些 kind 是可追蹤的，並快取世界內可追蹤總數。
// 總數在第一次需要時計算一次；正數結果在本次世界運行期間不再重算，
// 非正數視為「尚未可知」且不快取，以容忍註冊表尚未載入完成的過渡狀態。
type Catalog struct {
	mobs   *data.MobTable
	excl   *data.ExclusionTable
	prober Prober
	total  int // cached only when positive
	log    *zap.Logger
}

func NewCatalog(mobs *data.MobTable, excl *data.ExclusionTable, prober Prober, log *zap.Logger) *Catalog {
	return &Catalog{mobs: mobs, excl: excl, prober: prober, log: log}
}

// Registered 回報 kind 目前是否存在於註冊表。
func (c *Catalog) Registered(kind string) bool {
	return c.mobs.Has(kind)
}

// Trackable 回報 kind 是否列入圖鑑：已註冊且未被排除名單排除。
func (c *Catalog) Trackable(kind string) bool {
	return c.mobs.Has(kind) && !c.excl.Excluded(kind)
}

// TotalTrackable 回傳可追蹤 kind 總數。首次呼叫逐一探測所有未排除的
// kind，確認其確實生成為生物（而非投射物等）後計入。
func (c *Catalog) TotalTrackable() int {
	if c.total > 0 {
		return c.total
	}
	count := 0
	for _, key := range c.mobs.Keys() {
		if c.excl.Excluded(key) {
			continue
		}
		if err := c.prober.Probe(key); err != nil {
			// 探測失敗視為該 kind 暫時不可用，不影響整體計算
			c.log.Debug("圖鑑總數探測失敗",
				zap.String("kind", key),
				zap.Error(err),
			)
			continue
		}
		count++
	}
	if count > 0 {
		c.total = count
		c.log.Info("圖鑑可追蹤總數已計算", zap.Int("total", count))
	}
	return count
}

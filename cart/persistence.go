package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Tomm10100/el-dorado-ecommerce/models"
)

// keyPrefix namespaces cart slots in shared backends. The suffix matches the
// storage key the browser storefront used.
const keyPrefix = "eldorado-cart:"

// Persistence stores the full line list for a cart key as one JSON array.
// Implementations must treat a missing or unparseable stored value as an
// empty cart and return it without error; only transport failures surface.
type Persistence interface {
	Load(key string) ([]Line, error)
	Save(key string, lines []Line) error
}

// decodeLines parses a stored JSON array. Anything that does not parse is an
// empty cart; the format carries no version field, so corruption and format
// drift both degrade the same way.
func decodeLines(raw []byte) []Line {
	if len(raw) == 0 {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		log.Printf("cart: discarding unparseable stored cart: %v", err)
		return nil
	}
	return lines
}

func encodeLines(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// GormPersistence keeps one cart_records row per cart key.
type GormPersistence struct {
	DB *gorm.DB
}

func NewGormPersistence(db *gorm.DB) *GormPersistence {
	return &GormPersistence{DB: db}
}

func (p *GormPersistence) Load(key string) ([]Line, error) {
	var rec models.CartRecord
	if err := p.DB.Where("cart_key = ?", key).First(&rec).Error; err != nil {
		// Missing row and read failure both rehydrate as empty; a cart read
		// problem must never take the page down.
		if err != gorm.ErrRecordNotFound {
			log.Printf("cart: failed to load record for %s: %v", key, err)
		}
		return nil, nil
	}
	return decodeLines([]byte(rec.Lines)), nil
}

func (p *GormPersistence) Save(key string, lines []Line) error {
	raw, err := encodeLines(lines)
	if err != nil {
		return err
	}
	rec := models.CartRecord{CartKey: key, Lines: string(raw), UpdatedAt: time.Now()}
	return p.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"lines", "updated_at"}),
	}).Create(&rec).Error
}

// RedisPersistence keeps each cart under eldorado-cart:<key>. Abandoned
// carts expire after 30 days.
type RedisPersistence struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPersistence(client *redis.Client) *RedisPersistence {
	return &RedisPersistence{Client: client, TTL: 30 * 24 * time.Hour}
}

func (p *RedisPersistence) Load(key string) ([]Line, error) {
	raw, err := p.Client.Get(context.Background(), keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cart: failed to load record for %s: %v", key, err)
		}
		return nil, nil
	}
	return decodeLines(raw), nil
}

func (p *RedisPersistence) Save(key string, lines []Line) error {
	raw, err := encodeLines(lines)
	if err != nil {
		return err
	}
	return p.Client.Set(context.Background(), keyPrefix+key, raw, p.TTL).Err()
}

// MemoryPersistence is a map-backed store for tests and single-process runs.
type MemoryPersistence struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{slots: make(map[string][]byte)}
}

func (p *MemoryPersistence) Load(key string) ([]Line, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return decodeLines(p.slots[key]), nil
}

func (p *MemoryPersistence) Save(key string, lines []Line) error {
	raw, err := encodeLines(lines)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slots[key] = raw
	return nil
}

// Put stores a raw value under key, bypassing encoding. Tests use it to
// simulate corrupted slots.
func (p *MemoryPersistence) Put(key string, raw []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slots[key] = raw
}

package session

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"storefront/internal/domain"

	"github.com/gorilla/securecookie"
	"github.com/klauspost/compress/zstd"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/hkdf"
)

// CookieName is both the HTTP cookie name and the securecookie value name, so
// a value minted for another cookie does not decode here.
const CookieName = "__session"

// MaxCookieLength is the largest token browsers reliably store in one cookie.
const MaxCookieLength = 4096

var (
	// ErrInvalidSecret is returned when the session secret is too short to derive keys from.
	ErrInvalidSecret = errors.New("session: secret must be at least 32 bytes")
	// ErrCartTooLarge is returned by CookieStore.Save when the encoded cart no
	// longer fits in a cookie.
	ErrCartTooLarge = fmt.Errorf("cart too large for session cookie: %w", domain.ErrInvalidArgument)
)

// CookieStore keeps the whole cart in the token, signed and encrypted.
type CookieStore struct {
	codec  *securecookie.SecureCookie
	logger *zap.Logger
}

func NewCookieStore(secret string, ttl time.Duration, logger *zap.Logger) (*CookieStore, error) {
	if len(secret) < 32 {
		return nil, ErrInvalidSecret
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hashKey, err := deriveKey(secret, "storefront session hash", 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(secret, "storefront session block", 32)
	if err != nil {
		return nil, err
	}
	serializer, err := newCompactSerializer()
	if err != nil {
		return nil, err
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(serializer)
	// Length is checked by Save and Load so an oversized cart gets its own error.
	codec.MaxLength(0)
	if ttl > 0 {
		codec.MaxAge(int(ttl.Seconds()))
	}
	return &CookieStore{codec: codec, logger: logger}, nil
}

func deriveKey(secret, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

func (s *CookieStore) Load(_ context.Context, token string) domain.Cart {
	if token == "" {
		return domain.Cart{}
	}
	if len(token) > MaxCookieLength {
		s.logger.Debug("session: discard oversized cookie", zap.Int("length", len(token)))
		return domain.Cart{}
	}
	var c domain.Cart
	if err := s.codec.Decode(CookieName, token, &c); err != nil {
		s.logger.Debug("session: discard cookie", zap.Error(err))
		return domain.Cart{}
	}
	return emptyIfNil(c)
}

// Save ignores the incoming token: the new token is the encoded cart.
func (s *CookieStore) Save(_ context.Context, _ string, c domain.Cart) (string, error) {
	encoded, err := s.codec.Encode(CookieName, emptyIfNil(c))
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if len(encoded) > MaxCookieLength {
		s.logger.Info("session: cart exceeds cookie size",
			zap.Int("lines", len(c)), zap.Int("length", len(encoded)))
		return "", ErrCartTooLarge
	}
	return encoded, nil
}

// cookieLine is the wire form of a line item. Keys are kept short because the
// cookie carries every line.
type cookieLine struct {
	SizeID          string          `json:"s"`
	Name            string          `json:"n"`
	ColorID         string          `json:"c"`
	ColorName       string          `json:"cn"`
	ColorSlug       string          `json:"cs,omitempty"`
	ColorHex        string          `json:"ch,omitempty"`
	ProductID       string          `json:"p"`
	ProductSlug     string          `json:"ps"`
	ProductName     string          `json:"pn"`
	UnitPrice       decimal.Decimal `json:"u"`
	SupplierName    string          `json:"sn"`
	SupplierAddress string          `json:"sa"`
	Amount          int             `json:"a"`
}

// compactSerializer writes carts as short-keyed JSON compressed with zstd.
// Snapshots of the same product repeat most of their text, which the
// compressor folds away.
type compactSerializer struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCompactSerializer() (*compactSerializer, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, fmt.Errorf("session: zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(1<<20))
	if err != nil {
		return nil, fmt.Errorf("session: zstd decoder: %w", err)
	}
	return &compactSerializer{enc: enc, dec: dec}, nil
}

func (z *compactSerializer) Serialize(src interface{}) ([]byte, error) {
	c, ok := src.(domain.Cart)
	if !ok {
		return nil, fmt.Errorf("session: cannot serialize %T", src)
	}
	lines := make([]cookieLine, len(c))
	for i, item := range c {
		lines[i] = cookieLine(item)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return nil, err
	}
	return z.enc.EncodeAll(raw, nil), nil
}

func (z *compactSerializer) Deserialize(src []byte, dst interface{}) error {
	c, ok := dst.(*domain.Cart)
	if !ok {
		return fmt.Errorf("session: cannot deserialize into %T", dst)
	}
	raw, err := z.dec.DecodeAll(src, nil)
	if err != nil {
		return err
	}
	var lines []cookieLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return err
	}
	out := make(domain.Cart, len(lines))
	for i, l := range lines {
		out[i] = domain.CartLineItem(l)
	}
	*c = out
	return nil
}

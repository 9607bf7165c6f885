package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/Hiro-mackay/tripshare/internal/domain/valueobject"
)

// DefaultCodeMaxAttempts はコード生成の最大試行回数
const DefaultCodeMaxAttempts = 10

var (
	ErrCodeGenerationExhausted = errors.New("group code generation exhausted")
)

// CodeChecker は参加コードの使用状況を確認します
type CodeChecker interface {
	ExistsByCode(ctx context.Context, code valueobject.GroupCode) (bool, error)
}

// GroupCodeGenerator は未使用の参加コードを発行するドメインサービス
// 6文字を36種の記号から一様に選び、既存グループと衝突しなければ返します
type GroupCodeGenerator struct {
	checker     CodeChecker
	random      io.Reader
	maxAttempts int
}

// NewGroupCodeGenerator は新しいGroupCodeGeneratorを作成します
func NewGroupCodeGenerator(checker CodeChecker) *GroupCodeGenerator {
	return &GroupCodeGenerator{
		checker:     checker,
		random:      rand.Reader,
		maxAttempts: DefaultCodeMaxAttempts,
	}
}

// WithRandom は乱数源を差し替えます
func (g *GroupCodeGenerator) WithRandom(r io.Reader) *GroupCodeGenerator {
	g.random = r
	return g
}

// WithMaxAttempts は最大試行回数を変更します
func (g *GroupCodeGenerator) WithMaxAttempts(n int) *GroupCodeGenerator {
	if n > 0 {
		g.maxAttempts = n
	}
	return g
}

// MaxAttempts は最大試行回数を返します
func (g *GroupCodeGenerator) MaxAttempts() int {
	return g.maxAttempts
}

// Generate は未使用のコードを返します
// 最大試行回数内に見つからなければErrCodeGenerationExhaustedを返します
func (g *GroupCodeGenerator) Generate(ctx context.Context) (valueobject.GroupCode, error) {
	code, _, err := g.GenerateWithin(ctx, g.maxAttempts)
	return code, err
}

// GenerateWithin は最大budget回のストア確認で未使用のコードを探します
// 消費した試行回数も返すため、呼び出し側は保存時の衝突を含めて同じ上限を共有できます
func (g *GroupCodeGenerator) GenerateWithin(ctx context.Context, budget int) (valueobject.GroupCode, int, error) {
	used := 0
	for used < budget {
		code, err := g.Random()
		if err != nil {
			return valueobject.GroupCode{}, used, err
		}

		used++
		exists, err := g.checker.ExistsByCode(ctx, code)
		if err != nil {
			return valueobject.GroupCode{}, used, err
		}
		if !exists {
			return code, used, nil
		}
	}

	return valueobject.GroupCode{}, used, ErrCodeGenerationExhausted
}

// Random はストアを確認せずにランダムなコードを1つ生成します
func (g *GroupCodeGenerator) Random() (valueobject.GroupCode, error) {
	alphabetSize := big.NewInt(int64(len(valueobject.GroupCodeAlphabet)))
	buf := make([]byte, valueobject.GroupCodeLength)

	for i := range buf {
		n, err := rand.Int(g.random, alphabetSize)
		if err != nil {
			return valueobject.GroupCode{}, fmt.Errorf("failed to read random source: %w", err)
		}
		buf[i] = valueobject.GroupCodeAlphabet[n.Int64()]
	}

	return valueobject.NewGroupCode(string(buf))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iotplatform/internal/gen"
	"iotplatform/pkg"
)

func newCachedCodeService(t *testing.T) (*CodeService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := NewCodeService()
	svc.cache = pkg.NewCache(client, codeCachePrefix)
	svc.cacheTTL = time.Minute
	return svc, mr
}

func TestCodeService_GenerateCachesResult(t *testing.T) {
	setupTestDB(t)
	svc, mr := newCachedCodeService(t)
	req := gen.Request{Document: ledBlocks, Language: gen.LanguageCpp}

	first, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, first.Code, "digitalWrite(13, HIGH);")

	key := codeCachePrefix + requestKey(req)
	require.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	// A planted entry proves the second call never reaches the generator.
	planted := `{"code":"cached","language":"cpp","warnings":[]}`
	require.NoError(t, mr.Set(key, planted))

	second, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "cached", second.Code)
}

func TestCodeService_RequestKeyCoversEveryInput(t *testing.T) {
	base := gen.Request{Document: ledBlocks, Language: gen.LanguagePython}
	key := requestKey(base)

	assert.Equal(t, key, requestKey(base))
	assert.NotEqual(t, key, requestKey(gen.Request{Document: ledBlocks, Language: gen.LanguageCpp}))
	assert.NotEqual(t, key, requestKey(gen.Request{Document: ledBlocks, Language: gen.LanguagePython, TargetDevice: "esp32"}))
	assert.NotEqual(t, key, requestKey(gen.Request{Document: "", Language: gen.LanguagePython}))
}

func TestCodeService_GenerateWithoutRedis(t *testing.T) {
	setupTestDB(t)
	svc := NewCodeService()

	result, err := svc.Generate(context.Background(), gen.Request{Document: ledBlocks, Language: gen.LanguagePython})
	require.NoError(t, err)
	assert.Contains(t, result.Code, `led_set(13, "ON")`)
	assert.Empty(t, result.Warnings)
}

func TestCodeService_GenerateSurvivesRedisOutage(t *testing.T) {
	setupTestDB(t)
	svc, mr := newCachedCodeService(t)
	mr.Close()

	result, err := svc.Generate(context.Background(), gen.Request{Document: ledBlocks, Language: gen.LanguagePython})
	require.NoError(t, err)
	assert.Contains(t, result.Code, `led_set(13, "ON")`)
}

func TestCodeService_Check(t *testing.T) {
	setupTestDB(t)
	svc := NewCodeService()

	ok := svc.Check("print('hi')\n", gen.LanguagePython)
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Errors)

	bad := svc.Check("def broken(:\n", gen.LanguagePython)
	assert.False(t, bad.Valid)
	require.NotEmpty(t, bad.Errors)
	assert.Equal(t, gen.ErrorSyntax, bad.Errors[0])

	empty := svc.Check("   ", gen.LanguageCpp)
	assert.False(t, empty.Valid)
}

func TestCodeService_Validate(t *testing.T) {
	setupTestDB(t)
	svc := NewCodeService()

	result := svc.Validate(gen.Request{Document: ledBlocks, Language: gen.LanguagePython})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	malformed := svc.Validate(gen.Request{Document: "<xml>", Language: gen.LanguagePython})
	assert.True(t, malformed.Valid)
	assert.Equal(t, []string{gen.WarningInvalidDocument}, malformed.Warnings)
}

func TestCodeService_Templates(t *testing.T) {
	setupTestDB(t)
	svc := NewCodeService()

	summaries := svc.Templates()
	require.NotEmpty(t, summaries)

	names := make([]string, len(summaries))
	for i, s := range summaries {
		names[i] = s.Name
		assert.NotEmpty(t, s.Languages, s.Name)
		assert.NotEmpty(t, s.Title, s.Name)
	}
	assert.Equal(t, gen.TemplateNames(), names)

	blink, err := svc.Template("blink", gen.LanguageCpp)
	require.NoError(t, err)
	assert.Contains(t, blink.Code, "void setup()")
}

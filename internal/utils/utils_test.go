package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    const secret = "test-secret"

    at, err := NewAccessToken(secret, 42, "admin", 60)
    require.NoError(t, err)
    require.NotEmpty(t, at.Token)
    assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), at.Exp, 5*time.Second)

    tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)

    claims, ok := tok.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, "admin", claims["role"])
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
    at, err := NewAccessToken("right-secret", 1, "user", 60)
    require.NoError(t, err)

    _, err = jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
    hash, err := HashPassword("s3cret-pw", 4) // minimum cost keeps the test fast
    require.NoError(t, err)
    require.NotEqual(t, "s3cret-pw", hash)

    assert.True(t, VerifyPassword(hash, "s3cret-pw"))
    assert.False(t, VerifyPassword(hash, "wrong"))
    assert.False(t, VerifyPassword("not-a-hash", "s3cret-pw"))
}

func TestTicketQR(t *testing.T) {
    png, err := TicketQR("BK1765735200000ABCDE", 256)
    require.NoError(t, err)
    require.NotEmpty(t, png)
    // PNG magic header.
    assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

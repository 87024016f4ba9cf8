package handlers

import (
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitOffset(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		limit, offset := parseLimitOffset(c, defaultPageSize)
		return c.SendString(strconv.Itoa(limit) + "/" + strconv.Itoa(offset))
	})

	cases := map[string]string{
		"":                    "50/0",
		"?limit=10&offset=20": "10/20",
		"?limit=1000":         "200/0",
		"?limit=0":            "50/0",
		"?limit=-5":           "50/0",
		"?limit=abc&offset=x": "50/0",
		"?offset=-3":          "50/0",
		"?limit=%2015%20":     "15/0",
	}
	for query, want := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
		require.NoError(t, err, query)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, want, string(body), query)
	}
}

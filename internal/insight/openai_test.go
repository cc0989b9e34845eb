package insight_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"taskboard.app/server/core/config"
	"taskboard.app/server/internal/insight"
)

var _ = Describe("OpenAI provider", func() {
	It("is a silent no-op without an API key", func() {
		provider := insight.NewProvider(config.AIConfig{Provider: insight.ProviderOpenAI})

		out, err := provider.Generate(context.Background(), "sys", "usr", time.Second)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
	})

	It("is the default for unknown provider names", func() {
		provider := insight.NewProvider(config.AIConfig{Provider: "claude"})

		out, err := provider.Generate(context.Background(), "sys", "usr", time.Second)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
	})
})

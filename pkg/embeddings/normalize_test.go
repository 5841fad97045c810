package embeddings_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/stacks/pkg/embeddings"
)

func TestEmbeddings(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Embeddings Suite")
}

func length(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

var _ = Describe("Normalize", func() {
	It("scales vectors to unit length", func() {
		v := embeddings.Normalize([]float32{3, 4})
		Expect(length(v)).To(BeNumerically("~", 1.0, 1e-6))
		Expect(v[0]).To(BeNumerically("~", 0.6, 1e-6))
		Expect(v[1]).To(BeNumerically("~", 0.8, 1e-6))
	})

	It("leaves zero vectors unchanged", func() {
		v := embeddings.Normalize([]float32{0, 0, 0})
		Expect(v).To(Equal([]float32{0, 0, 0}))
	})

	It("leaves unit vectors unit length", func() {
		v := embeddings.Normalize([]float32{1, 0})
		Expect(length(v)).To(BeNumerically("~", 1.0, 1e-6))
	})

	It("normalizes every vector in a batch", func() {
		vs := embeddings.NormalizeAll([][]float32{{2, 0}, {0, 5}})
		Expect(length(vs[0])).To(BeNumerically("~", 1.0, 1e-6))
		Expect(length(vs[1])).To(BeNumerically("~", 1.0, 1e-6))
	})
})

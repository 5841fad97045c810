package configcmder_test

import (
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	configcmder "github.com/papercomputeco/stacks/cmd/stacks/config"
	"github.com/papercomputeco/stacks/pkg/config"
)

func TestConfigCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Command Suite")
}

var _ = Describe("Config Command", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("NewConfigCmd", func() {
		It("creates a command with get, set, and list subcommands", func() {
			cmd := configcmder.NewConfigCmd()
			Expect(cmd.Use).To(Equal("config"))

			names := make([]string, 0)
			for _, sub := range cmd.Commands() {
				names = append(names, sub.Name())
			}
			Expect(names).To(ContainElements("get", "set", "list"))
		})
	})

	Describe("set", func() {
		It("persists a value readable through the Configer", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.PersistentFlags().String("config-dir", "", "Override path to .stacks/ config directory")
			cmd.SetArgs([]string{"set", "retrieval.top_k", "5", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())

			cfger, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			value, err := cfger.GetConfigValue("retrieval.top_k")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("5"))
		})

		It("rejects unknown keys", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.PersistentFlags().String("config-dir", "", "Override path to .stacks/ config directory")
			cmd.SetArgs([]string{"set", "bogus.key", "value", "--config-dir", tmpDir})
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			Expect(cmd.Execute()).NotTo(Succeed())
		})
	})

	Describe("get", func() {
		It("reads defaults when no config file exists", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.PersistentFlags().String("config-dir", "", "Override path to .stacks/ config directory")
			cmd.SetArgs([]string{"get", "collection.name", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
		})
	})

	Describe("list", func() {
		It("lists all keys without error", func() {
			cmd := configcmder.NewConfigCmd()
			cmd.PersistentFlags().String("config-dir", "", "Override path to .stacks/ config directory")
			cmd.SetArgs([]string{"list", "--config-dir", tmpDir})

			Expect(cmd.Execute()).To(Succeed())
		})
	})
})

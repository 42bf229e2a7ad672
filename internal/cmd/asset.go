package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"

	"github.com/neurocron/neurocron/internal/errors"
	"github.com/neurocron/neurocron/internal/platform"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage creative assets",
	Long: `Manage creative assets (copy, images, video references) for the
selected organization.

Subcommands:
  list  List assets
  show  Show asset details
  add   Register a new asset

When --file is given, 'add' fingerprints the content with BLAKE3 so the
platform can deduplicate uploads.

Examples:
  neurocron asset list
  neurocron asset add --file hero.png
  neurocron asset add --name "Launch tagline" --kind copy --url https://cdn.acme.com/tagline.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets",
	RunE:  runAssetList,
}

var assetShowCmd = &cobra.Command{
	Use:   "show <asset-id>",
	Short: "Show asset details",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetShow,
}

var assetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new asset",
	RunE:  runAssetAdd,
}

func runAssetList(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}
	orgID, err := handle.resolveOrgID(cmdCtx)
	if err != nil {
		return err
	}

	assets, err := handle.client.ListAssets(cmd.Context(), orgID)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(assets)
	}

	if len(assets) == 0 {
		fmt.Println("No assets found.")
		fmt.Println("\nRegister one with: neurocron asset add --file <path>")
		return nil
	}

	for _, a := range assets {
		printAsset(&a, false)
		fmt.Println("---")
	}
	return nil
}

func runAssetShow(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}

	asset, err := handle.client.GetAsset(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(asset)
	}

	printAsset(asset, true)
	return nil
}

func runAssetAdd(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	req := platform.CreateAssetRequest{}
	req.Name, _ = cmd.Flags().GetString("name")
	req.Kind, _ = cmd.Flags().GetString("kind")
	req.ContentURL, _ = cmd.Flags().GetString("url")
	file, _ := cmd.Flags().GetString("file")

	if file != "" {
		fingerprint, size, err := fingerprintFile(file)
		if err != nil {
			return err
		}
		req.Fingerprint = fingerprint
		req.SizeBytes = size
		if req.Name == "" {
			req.Name = filepath.Base(file)
		}
		if req.Kind == "" {
			req.Kind = detectAssetKind(file)
		}
	}

	if req.Name == "" {
		return fmt.Errorf("--name is required when no --file is given")
	}
	if req.Kind == "" {
		if req.ContentURL != "" {
			req.Kind = detectAssetKind(req.ContentURL)
		} else {
			req.Kind = "copy"
		}
	}

	handle, err := openSession(cmd.Context(), cmdCtx)
	if err != nil {
		return err
	}
	orgID, err := handle.resolveOrgID(cmdCtx)
	if err != nil {
		return err
	}
	req.OrgID = orgID

	asset, err := handle.client.CreateAsset(cmd.Context(), req)
	if err != nil {
		return err
	}

	if cmdCtx.Structured() {
		formatter, err := cmdCtx.NewFormatter()
		if err != nil {
			return err
		}
		return formatter.Format(asset)
	}

	fmt.Println("Asset registered!")
	printAsset(asset, true)
	return nil
}

func printAsset(a *platform.Asset, detailed bool) {
	fmt.Printf("ID:   %s\n", a.ID)
	fmt.Printf("Name: %s\n", a.Name)
	fmt.Printf("Kind: %s\n", a.Kind)
	if a.SizeBytes > 0 {
		fmt.Printf("Size: %d bytes\n", a.SizeBytes)
	}
	if a.Fingerprint != "" {
		fp := a.Fingerprint
		if !detailed && len(fp) > 12 {
			fp = fp[:12]
		}
		fmt.Printf("Fingerprint: %s\n", fp)
	}
	if detailed && a.ContentURL != "" {
		fmt.Printf("URL:  %s\n", a.ContentURL)
	}
	if detailed && !a.CreatedAt.IsZero() {
		fmt.Printf("Created: %s\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

// fingerprintFile streams the file through BLAKE3 and returns the hex
// digest plus the byte count.
func fingerprintFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, errors.NewFileNotFoundError(path)
		}
		return "", 0, err
	}
	defer f.Close()

	h := blake3.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), size, nil
}

// detectAssetKind guesses the asset kind from the file extension.
// Anything that is not clearly an image or video registers as copy.
func detectAssetKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
		return "image"
	case ".mp4", ".mov", ".webm", ".avi":
		return "video"
	default:
		return "copy"
	}
}

func init() {
	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetShowCmd)
	assetCmd.AddCommand(assetAddCmd)

	assetAddCmd.Flags().String("name", "", "Asset name (defaults to the file name)")
	assetAddCmd.Flags().String("kind", "", "Asset kind: copy, image, or video (detected from --file)")
	assetAddCmd.Flags().String("url", "", "Content URL for externally hosted assets")
	assetAddCmd.Flags().String("file", "", "Local file to fingerprint")

	rootCmd.AddCommand(assetCmd)
}

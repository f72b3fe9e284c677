package encryption

import (
	"bufio"
	"crypto/cipher"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/gost2/internal/config"
	"github.com/idelchi/gost2/internal/fileutil"
)

// Processor handles the encryption or decryption of one file.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// mode is the file format selected by cfg.Scheme
	mode CipherMode

	// scheme performs the streaming transformation
	scheme Scheme

	// block is wiped on Close
	block cipher.Block
}

// NewProcessor creates a Processor for cfg over block. The Processor takes
// ownership of block and wipes it on Close when block supports it.
func NewProcessor(cfg *config.Config, block cipher.Block) (*Processor, error) {
	return newProcessor(cfg, block, nil)
}

func newProcessor(cfg *config.Config, block cipher.Block, random io.Reader) (*Processor, error) {
	mode, err := ParseMode(cfg.Scheme)
	if err != nil {
		return nil, err
	}

	scheme, err := mode.New(block, random)
	if err != nil {
		return nil, fmt.Errorf("creating %v scheme: %w", mode, err)
	}

	return &Processor{
		cfg:    cfg,
		mode:   mode,
		scheme: scheme,
		block:  block,
	}, nil
}

// Close wipes the key material held by the Processor.
func (p *Processor) Close() {
	if w, ok := p.block.(interface{ Wipe() }); ok {
		w.Wipe()
	}
}

// Process encrypts or decrypts cfg.File into the derived output path.
//
// In streaming decryption an authentication mismatch is reported through
// Result.Authenticated. With VerifyFirst it becomes ErrAuthentication and no
// output is left behind.
func (p *Processor) Process() (Result, error) {
	start := time.Now()

	result := Result{
		Input:     p.cfg.File,
		Output:    p.OutputPath(),
		Decrypted: p.cfg.Decrypt(),
	}

	var err error

	if result.Decrypted && p.cfg.VerifyFirst {
		result.OutputSize, err = p.decryptVerified(result.Input, result.Output)
		result.Authenticated = err == nil
	} else {
		result.OutputSize, result.Authenticated, err = p.processFile(result.Input, result.Output)
	}

	result.Duration = time.Since(start)

	if err != nil {
		return result, err
	}

	slog.Debug("processed file",
		"scheme", p.mode,
		"input", result.Input,
		"output", result.Output,
		"size", humanize.IBytes(uint64(max(0, result.OutputSize))), //nolint:gosec // clamped to non-negative
		"duration", result.Duration.Round(time.Millisecond),
	)

	return result, nil
}

// processFile streams the input straight into the output file. Plaintext may
// reach the disk before authentication has been decided.
//
//nolint:nonamedreturns // err drives the deferred cleanup
func (p *Processor) processFile(filename, outPath string) (size int64, authenticated bool, err error) {
	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, false, ioError("opening input file", err)
	}
	defer inFile.Close()

	info, err := inFile.Stat()
	if err != nil {
		return 0, false, ioError("reading input file info", err)
	}

	outFile, err := os.OpenFile(filepath.Clean(outPath), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileutil.OwnerReadWrite)
	if err != nil {
		return 0, false, ioError("creating output file", err)
	}

	defer func() {
		outFile.Close() //nolint:gosec // already closed on success

		if p.mode.RemovesPartialOutput() {
			fileutil.RemoveOnError(outPath, &err)
		}
	}()

	writer := bufio.NewWriterSize(outFile, chunkSize)

	if p.cfg.Decrypt() {
		authenticated, err = p.scheme.Decrypt(inFile, writer)
		if err != nil {
			// Whatever was recovered before the failure still reaches the file.
			_ = writer.Flush()

			return 0, false, fmt.Errorf("decrypting file: %w", err)
		}
	} else {
		if err = p.scheme.Encrypt(inFile, writer); err != nil {
			_ = writer.Flush()

			return 0, false, fmt.Errorf("encrypting file: %w", err)
		}

		authenticated = true
	}

	if err = writer.Flush(); err != nil {
		return 0, false, ioError("flushing output", err)
	}

	if err = outFile.Close(); err != nil {
		return 0, false, ioError("closing output file", err)
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, info.ModTime())
	if err != nil {
		return 0, false, ioError("finalizing output", err)
	}

	return size, authenticated, nil
}

// decryptVerified decrypts into a temporary file next to the output and only
// renames it into place once the trailer has been verified.
//
//nolint:nonamedreturns // err drives the deferred cleanup
func (p *Processor) decryptVerified(filename, outPath string) (size int64, err error) {
	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, ioError("preparing verified output", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, ioError("opening input file", err)
	}
	defer inFile.Close()

	writer := bufio.NewWriterSize(tc.TmpFile, chunkSize)

	authenticated, err := p.scheme.Decrypt(inFile, writer)
	if err != nil {
		return 0, fmt.Errorf("decrypting file: %w", err)
	}

	if !authenticated {
		err = fmt.Errorf("%w: %q", ErrAuthentication, filename)

		return 0, err
	}

	if err = writer.Flush(); err != nil {
		return 0, ioError("flushing output", err)
	}

	if err = tc.Commit(outPath); err != nil {
		return 0, ioError("committing output", err)
	}

	size, err = fileutil.FinalizeOutput(outPath, p.cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, ioError("finalizing output", err)
	}

	return size, nil
}

// OutputPath returns the path the run writes to: the input plus EncryptedSuffix
// when encrypting. When decrypting, a trailing EncryptedSuffix in any case is
// stripped, provided something remains, otherwise DecryptedSuffix is appended.
func (p *Processor) OutputPath() string {
	return OutputPath(p.cfg.File, p.cfg.Decrypt())
}

// OutputPath derives the output path for filename.
func OutputPath(filename string, decrypt bool) string {
	if !decrypt {
		return filename + config.EncryptedSuffix
	}

	suffix := len(config.EncryptedSuffix)

	if len(filename) > suffix && strings.EqualFold(filename[len(filename)-suffix:], config.EncryptedSuffix) {
		return filename[:len(filename)-suffix]
	}

	return filename + config.DecryptedSuffix
}

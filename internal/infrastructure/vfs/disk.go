package vfs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"jarstage.dev/launcher/internal/core/classpath"
	"jarstage.dev/launcher/internal/core/ports"
)

// DiskBridge roots the staging namespace under a host directory and
// runs the entry point by exec-ing a JVM. Virtual paths in the
// classpath are remapped onto the host root before handoff.
type DiskBridge struct {
	root    string
	javaBin string
}

// NewDiskBridge creates a bridge rooted at root, creating it if needed.
// javaBin defaults to "java" when empty.
func NewDiskBridge(root, javaBin string) (*DiskBridge, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve staging root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging root: %w", err)
	}
	if javaBin == "" {
		javaBin = "java"
	}
	return &DiskBridge{root: abs, javaBin: javaBin}, nil
}

var _ ports.RuntimeBridge = (*DiskBridge)(nil)

// resolve maps a virtual path onto the host root, rejecting traversal
// outside it.
func (b *DiskBridge) resolve(p string) (string, error) {
	target := filepath.Join(b.root, filepath.FromSlash(strings.TrimPrefix(p, "/")))
	target = filepath.Clean(target)
	if target != b.root && !strings.HasPrefix(target, b.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes staging root: %s", p)
	}
	return target, nil
}

// OpenFile opens the mapped host path for exclusive truncating write,
// creating parent directories as the staging mount would.
func (b *DiskBridge) OpenFile(ctx context.Context, p string) (ports.FileHandle, error) {
	target, err := b.resolve(p)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}
	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	return &diskHandle{file: file}, nil
}

// CreateDirectory creates a single directory level; an existing
// directory is an error here, the preparer above decides leniency.
func (b *DiskBridge) CreateDirectory(ctx context.Context, p string) error {
	target, err := b.resolve(p)
	if err != nil {
		return err
	}
	return os.Mkdir(target, 0755)
}

// DeleteTree removes the mapped path recursively.
func (b *DiskBridge) DeleteTree(ctx context.Context, p string) error {
	target, err := b.resolve(p)
	if err != nil {
		return err
	}
	if _, err := os.Stat(target); err != nil {
		return err
	}
	return os.RemoveAll(target)
}

// RunEntryPoint execs the JVM with the remapped classpath and blocks
// until it exits, passing the exit status through uninterpreted.
func (b *DiskBridge) RunEntryPoint(ctx context.Context, mainClass, cp string, args ...string) (int, error) {
	entries := strings.Split(cp, classpath.Separator)
	mapped := make([]string, 0, len(entries))
	for _, entry := range entries {
		target, err := b.resolve(entry)
		if err != nil {
			return -1, err
		}
		mapped = append(mapped, target)
	}

	jvmArgs := append([]string{"-cp", strings.Join(mapped, string(os.PathListSeparator)), mainClass}, args...)
	cmd := exec.CommandContext(ctx, b.javaBin, jvmArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("failed to start runtime: %w", err)
	}
	return 0, nil
}

type diskHandle struct {
	file *os.File
}

func (h *diskHandle) Write(ctx context.Context, p []byte) (int, error) {
	return h.file.Write(p)
}

func (h *diskHandle) Close(ctx context.Context) error {
	return h.file.Close()
}

// Copyright (C) 2025 Keyspace-X Project
//
// This file is part of keyspace-auth-go.
//
// keyspace-auth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// keyspace-auth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with keyspace-auth-go.  If not, see <https://www.gnu.org/licenses/>.

// Package keyspaceauth provides version information for keyspace-auth-go and
// the standards it implements.
package keyspaceauth

const (
	// Version is the current version of keyspace-auth-go
	Version = "1.0.0"

	// WalletName is the EIP-712 domain name of the account this library
	// authorizes signatures for
	WalletName = "Coinbase Smart Wallet"

	// WalletVersion is the EIP-712 domain version string
	WalletVersion = "1"

	// ERC1271Revision is the revision of the ERC-1271 contract signature
	// standard this library implements
	ERC1271Revision = "final"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	LibraryVersion  string
	WalletName      string
	WalletVersion   string
	ERC1271Revision string
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		LibraryVersion:  Version,
		WalletName:      WalletName,
		WalletVersion:   WalletVersion,
		ERC1271Revision: ERC1271Revision,
	}
}

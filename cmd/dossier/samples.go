// Copyright 2026 Tessier Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

type sampleFile struct {
	filename string
	title    string
	tags     string
	content  string
}

// sampleFiles are the starter documents written by the seed command.
// Their titles and filenames sit on the engine's exclusion list, so
// seeded content demonstrates the full pipeline without ever reaching
// query results.
var sampleFiles = []sampleFile{
	{
		filename: "mes_notes_admin.txt",
		title:    "Mes Notes Administratives",
		tags:     "admin,rapports,contacts",
		content: `MES NOTES

Rapports à générer chaque mois :
1. Rapport d'activité clients
2. Suivi des paiements
3. Audit sécurité

Projets en cours :
• Migration base de données
• Mise à jour sécurité
`,
	},
	{
		filename: "procédures_internes.txt",
		title:    "Procédures Internes",
		tags:     "procédures,administration",
		content: `PROCÉDURES INTERNES

Création de compte utilisateur :
1. Vérifier l'email dans le CRM
2. Générer un mot de passe temporaire
3. Envoyer les instructions de connexion

Gestion des incidents :
• Niveau 1 : Support utilisateur
• Niveau 2 : Administration système
• Niveau 3 : Développeur
`,
	},
	{
		filename: "mes_documents_personnels.txt",
		title:    "Mes Documents Personnels",
		tags:     "personnel,documents",
		content: `DOCUMENTS PERSONNELS

Informations personnelles :
• Poste : Utilisateur standard
• Manager : Administration

Fichiers importants :
- Contrat de travail
- Notes de réunion
- Suivi de projet

Objectifs trimestriels :
1. Formation produit
2. Documentation utilisateur
3. Tests qualité
`,
	},
	{
		filename: "suivi_projets.txt",
		title:    "Suivi de Mes Projets",
		tags:     "projets,suivi",
		content: `SUIVI DE PROJETS

Projet Alpha :
• Statut : En cours
• Livrables : 3/5 complétés

Projet Beta :
• Statut : Planification
• Équipe : 4 membres
`,
	},
}
